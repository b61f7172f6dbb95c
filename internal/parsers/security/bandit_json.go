// Package security decodes static-analysis security scanner output,
// currently Bandit's JSON report.
package security

import (
	"encoding/json"
	"strings"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// BanditJSON decodes `bandit -f json` output: a top-level "results" array
// of findings, each with a test ID, severity/confidence pair, and a
// 1-based line number (plus an optional line range).
type BanditJSON struct{}

type banditDoc struct {
	Results []banditResult `json:"results"`
}

type banditResult struct {
	Filename      string `json:"filename"`
	LineNumber    int    `json:"line_number"`
	TestID        string `json:"test_id"`
	TestName      string `json:"test_name"`
	IssueSeverity string `json:"issue_severity"`
	IssueText     string `json:"issue_text"`
	Code          string `json:"code"`
}

func NewBanditJSON() parser.Parser { return BanditJSON{} }

func (BanditJSON) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.BanditJSON,
		DisplayName: "Bandit (JSON)",
		Priority:    73,
		Category:    parser.CategorySecurity,
		Groups:      []string{catalog.GroupPython},
		Aliases:     []string{"bandit"},
	}
}

func (BanditJSON) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "{") {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(t), &probe); err != nil {
		return false
	}
	_, ok := probe["results"]
	return ok
}

func (BanditJSON) Parse(content string) ([]types.ValidationEvent, error) {
	var doc banditDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		ev := types.NewEvent("bandit", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusError
		ev.Severity = "error"
		ev.Message = "malformed bandit json: " + err.Error()
		return []types.ValidationEvent{ev}, nil
	}

	var events []types.ValidationEvent
	for _, r := range doc.Results {
		ev := types.NewEvent("bandit", types.EventTypeSecurityFinding)
		ev.Category = "security_finding"
		ev.RefFile = r.Filename
		ev.RefLine = int32(r.LineNumber)
		ev.ErrorCode = r.TestID
		ev.Message = r.IssueText
		ev.LogContent = r.Code
		ev.Status = types.StatusFail
		switch strings.ToUpper(r.IssueSeverity) {
		case "HIGH":
			ev.Severity = "error"
		case "MEDIUM":
			ev.Severity = "warning"
		default:
			ev.Severity = "info"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("bandit", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
