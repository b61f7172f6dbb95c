// Package linters decodes the structured (mostly JSON) output of static
// analysis tools: ESLint, Clippy, RuboCop, flake8, and mypy.
package linters

import (
	"encoding/json"
	"strings"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// ESLintJSON decodes `eslint -f json` output: an array of per-file
// results, each carrying a list of messages with rule IDs and severity.
type ESLintJSON struct{}

type eslintFile struct {
	FilePath string         `json:"filePath"`
	Messages []eslintIssue  `json:"messages"`
	ErrorCnt int            `json:"errorCount"`
	WarnCnt  int            `json:"warningCount"`
}

type eslintIssue struct {
	RuleID    string `json:"ruleId"`
	Severity  int    `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	NodeType  string `json:"nodeType"`
}

func NewESLintJSON() parser.Parser { return ESLintJSON{} }

func (ESLintJSON) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.ESLintJSON,
		DisplayName: "ESLint (JSON)",
		Priority:    75,
		Category:    parser.CategoryLinter,
		Groups:      []string{catalog.GroupJavaScript},
		Aliases:     []string{"eslint"},
	}
}

func (ESLintJSON) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "[") {
		return false
	}
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(t), &probe); err != nil {
		return false
	}
	if len(probe) == 0 {
		return false
	}
	_, hasFilePath := probe[0]["filePath"]
	_, hasMessages := probe[0]["messages"]
	return hasFilePath && hasMessages
}

func (ESLintJSON) Parse(content string) ([]types.ValidationEvent, error) {
	var files []eslintFile
	if err := json.Unmarshal([]byte(content), &files); err != nil {
		ev := types.NewEvent("eslint", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusError
		ev.Severity = "error"
		ev.Message = "malformed eslint json: " + err.Error()
		return []types.ValidationEvent{ev}, nil
	}

	var events []types.ValidationEvent
	for _, f := range files {
		for _, m := range f.Messages {
			ev := types.NewEvent("eslint", types.EventTypeLintIssue)
			ev.Category = "lint_issue"
			ev.RefFile = f.FilePath
			ev.RefLine = int32(m.Line)
			ev.RefColumn = int32(m.Column)
			ev.ErrorCode = m.RuleID
			ev.Message = m.Message
			if m.Severity >= 2 {
				ev.Status = types.StatusFail
				ev.Severity = "error"
			} else {
				ev.Status = types.StatusFail
				ev.Severity = "warning"
			}
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		ev := types.NewEvent("eslint", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
