package linters

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Flake8Text decodes flake8's default line format:
// "path/to/file.py:10:5: E501 line too long (82 > 79 characters)".
type Flake8Text struct{}

var flake8LineRe = regexp.MustCompile(`^(\S+\.py):(\d+):(\d+):\s*([EWFC]\d+)\s+(.+)$`)

func NewFlake8Text() parser.Parser { return Flake8Text{} }

func (Flake8Text) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Flake8Text,
		DisplayName: "flake8",
		Priority:    55,
		Category:    parser.CategoryLinter,
		Groups:      []string{catalog.GroupPython},
		Aliases:     []string{"flake8"},
	}
}

func (Flake8Text) CanParse(content string) bool {
	return flake8LineRe.MatchString(firstMatchLine(content, flake8LineRe))
}

func (Flake8Text) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for _, line := range textutil.Lines(content) {
		m := flake8LineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("flake8", types.EventTypeLintIssue)
		ev.Category = "lint_issue"
		ev.RefFile = m[1]
		ev.RefLine = textutil.AtoiOr32(m[2], -1)
		ev.RefColumn = textutil.AtoiOr32(m[3], -1)
		ev.ErrorCode = m[4]
		ev.Message = strings.TrimSpace(m[5])
		ev.Status = types.StatusFail
		switch m[4][0] {
		case 'E', 'F':
			ev.Severity = "error"
		default:
			ev.Severity = "warning"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("flake8", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func firstMatchLine(content string, re *regexp.Regexp) string {
	for _, line := range textutil.Lines(content) {
		if re.MatchString(line) {
			return line
		}
	}
	return ""
}
