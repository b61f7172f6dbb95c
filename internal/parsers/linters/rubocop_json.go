package linters

import (
	"encoding/json"
	"strings"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// RubocopJSON decodes `rubocop --format json` output: a top-level "files"
// array, each file carrying an "offenses" list with a cop name, severity,
// message, and a 1-based location.
type RubocopJSON struct{}

type rubocopDoc struct {
	Files []rubocopFile `json:"files"`
}

type rubocopFile struct {
	Path     string            `json:"path"`
	Offenses []rubocopOffense  `json:"offenses"`
}

type rubocopOffense struct {
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	CopName     string `json:"cop_name"`
	Location    struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"location"`
}

func NewRubocopJSON() parser.Parser { return RubocopJSON{} }

func (RubocopJSON) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.RubocopJSON,
		DisplayName: "RuboCop (JSON)",
		Priority:    74,
		Category:    parser.CategoryLinter,
		Groups:      []string{catalog.GroupRuby},
		Aliases:     []string{"rubocop"},
	}
}

func (RubocopJSON) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "{") {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(t), &probe); err != nil {
		return false
	}
	_, ok := probe["files"]
	return ok
}

func (RubocopJSON) Parse(content string) ([]types.ValidationEvent, error) {
	var doc rubocopDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		ev := types.NewEvent("rubocop", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusError
		ev.Severity = "error"
		ev.Message = "malformed rubocop json: " + err.Error()
		return []types.ValidationEvent{ev}, nil
	}

	var events []types.ValidationEvent
	for _, f := range doc.Files {
		for _, o := range f.Offenses {
			ev := types.NewEvent("rubocop", types.EventTypeLintIssue)
			ev.Category = "lint_issue"
			ev.RefFile = f.Path
			ev.RefLine = int32(o.Location.Line)
			ev.RefColumn = int32(o.Location.Column)
			ev.ErrorCode = o.CopName
			ev.Message = o.Message
			ev.Status = types.StatusFail
			switch o.Severity {
			case "error", "fatal":
				ev.Severity = "error"
			case "convention", "refactor":
				ev.Severity = "info"
			default:
				ev.Severity = "warning"
			}
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		ev := types.NewEvent("rubocop", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
