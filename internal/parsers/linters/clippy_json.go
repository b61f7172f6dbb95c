package linters

import (
	"encoding/json"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// ClippyJSON decodes `cargo clippy --message-format=json` output: one JSON
// object per line, each either a "compiler-message" (the ones we care
// about) or a "compiler-artifact"/"build-finished" record we skip.
type ClippyJSON struct{}

type clippyRecord struct {
	Reason  string `json:"reason"`
	Message *struct {
		Message string `json:"message"`
		Level   string `json:"level"`
		Code    *struct {
			Code string `json:"code"`
		} `json:"code"`
		Spans []struct {
			FileName    string `json:"file_name"`
			LineStart   int    `json:"line_start"`
			ColumnStart int    `json:"column_start"`
			IsPrimary   bool   `json:"is_primary"`
		} `json:"spans"`
	} `json:"message"`
}

func NewClippyJSON() parser.Parser { return ClippyJSON{} }

func (ClippyJSON) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.ClippyJSON,
		DisplayName: "Clippy (JSON)",
		Priority:    72,
		Category:    parser.CategoryLinter,
		Groups:      []string{catalog.GroupRust},
		Aliases:     []string{"clippy"},
	}
}

func (ClippyJSON) CanParse(content string) bool {
	line := firstNonBlankLine(content)
	if !strings.HasPrefix(strings.TrimSpace(line), "{") {
		return false
	}
	var rec map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return false
	}
	_, hasReason := rec["reason"]
	return hasReason
}

func (ClippyJSON) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for _, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec clippyRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		if rec.Reason != "compiler-message" || rec.Message == nil {
			continue
		}
		if rec.Message.Level != "warning" && rec.Message.Level != "error" {
			continue
		}

		ev := types.NewEvent("clippy", types.EventTypeLintIssue)
		ev.Category = "lint_issue"
		ev.Message = rec.Message.Message
		if rec.Message.Code != nil {
			ev.ErrorCode = rec.Message.Code.Code
		}
		for _, sp := range rec.Message.Spans {
			if sp.IsPrimary {
				ev.RefFile = sp.FileName
				ev.RefLine = int32(sp.LineStart)
				ev.RefColumn = int32(sp.ColumnStart)
				break
			}
		}
		if rec.Message.Level == "error" {
			ev.Status = types.StatusFail
			ev.Severity = "error"
		} else {
			ev.Status = types.StatusFail
			ev.Severity = "warning"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("clippy", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func firstNonBlankLine(content string) string {
	for _, l := range textutil.Lines(content) {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}
