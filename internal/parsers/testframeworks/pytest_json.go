package testframeworks

import (
	"encoding/json"
	"strings"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// PytestJSON decodes the pytest-json-report plugin's output: a single JSON
// document with a "tests" array of per-test result objects. It walks
// the declared structure once and emits
// one event per leaf finding, taking location fields verbatim.
type PytestJSON struct{}

func NewPytestJSON() parser.Parser { return PytestJSON{} }

func (PytestJSON) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.PytestJSON,
		DisplayName: "pytest (JSON report)",
		Priority:    85,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupPython, catalog.GroupTest},
		Aliases:     []string{"pytest-json"},
	}
}

func (PytestJSON) CanParse(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return strings.Contains(trimmed, `"tests"`) && strings.Contains(trimmed, `"outcome"`)
}

type pytestJSONDoc struct {
	Tests []pytestJSONTest `json:"tests"`
	Summary struct {
		Passed  int `json:"passed"`
		Failed  int `json:"failed"`
		Skipped int `json:"skipped"`
		Error   int `json:"error"`
	} `json:"summary"`
}

type pytestJSONTest struct {
	Nodeid   string  `json:"nodeid"`
	Outcome  string  `json:"outcome"`
	Duration float64 `json:"duration"`
	Call     *struct {
		Longrepr string `json:"longrepr"`
	} `json:"call"`
}

func (PytestJSON) Parse(content string) ([]types.ValidationEvent, error) {
	var doc pytestJSONDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return []types.ValidationEvent{placeholderSummary("pytest")}, nil
	}

	var events []types.ValidationEvent
	for _, t := range doc.Tests {
		ev := types.NewEvent("pytest", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = t.Nodeid
		ev.ExecutionTime = t.Duration * 1000
		ev.HasExecutionTime = true

		file, _, _ := strings.Cut(t.Nodeid, "::")
		ev.RefFile = file

		switch strings.ToLower(t.Outcome) {
		case "passed":
			ev.Status = types.StatusPass
			ev.Severity = "info"
		case "failed":
			ev.Status = types.StatusFail
			ev.Severity = "error"
			if t.Call != nil {
				ev.Message = t.Call.Longrepr
			}
		case "skipped":
			ev.Status = types.StatusSkip
			ev.Severity = "info"
		default:
			ev.Status = types.StatusError
			ev.Severity = "error"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("pytest"))
	}
	return events, nil
}
