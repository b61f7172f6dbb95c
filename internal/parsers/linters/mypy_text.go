package linters

import (
	"strings"

	"regexp"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// MypyText decodes mypy's default line format:
// "path/to/file.py:10: error: Incompatible types [assignment]" plus the
// trailing "Found N errors in M files" summary.
type MypyText struct{}

var (
	mypyLineRe = regexp.MustCompile(`^(\S+\.py):(\d+):(?:\d+:)?\s*(error|warning|note):\s*(.+?)(?:\s*\[(\S+)\])?$`)
	mypySumRe  = regexp.MustCompile(`^(Found (\d+) errors? in \d+ files?|Success: no issues found)`)
)

func NewMypyText() parser.Parser { return MypyText{} }

func (MypyText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.MypyText,
		DisplayName: "mypy",
		Priority:    55,
		Category:    parser.CategoryLinter,
		Groups:      []string{catalog.GroupPython},
		Aliases:     []string{"mypy"},
	}
}

func (MypyText) CanParse(content string) bool {
	return mypyLineRe.MatchString(firstMatchLine(content, mypyLineRe))
}

func (MypyText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for _, line := range lines {
		m := mypyLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("mypy", types.EventTypeTypeError)
		ev.Category = "type_error"
		ev.RefFile = m[1]
		ev.RefLine = textutil.AtoiOr32(m[2], -1)
		ev.ErrorCode = m[5]
		ev.Message = strings.TrimSpace(m[4])
		ev.Status = types.StatusFail
		switch m[3] {
		case "error":
			ev.Severity = "error"
		case "warning":
			ev.Severity = "warning"
		default:
			ev.Severity = "info"
		}
		events = append(events, ev)
	}

	for i, line := range lines {
		m := mypySumRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ev := types.NewEvent("mypy", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Message = strings.TrimSpace(line)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		if textutil.AtoiOr(m[2], 0) > 0 {
			ev.Status = types.StatusFail
			ev.Severity = "error"
		} else {
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		events = append(events, ev)
		break
	}

	if len(events) == 0 {
		ev := types.NewEvent("mypy", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
