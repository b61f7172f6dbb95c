package testframeworks

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// RSpecText decodes RSpec's default documentation-format output: a
// numbered "Failures:" section followed by a "N examples, M failures"
// summary line. RSpec vs. Mocha/Chai is a deliberately
// ambiguous pair (both use tick/cross glyphs); the legacy auto-detect
// heuristic (internal/detect) disambiguates by file extension before this
// decoder's CanParse is ever consulted in auto mode.
type RSpecText struct{}

var (
	rspecFailureHdrRe = regexp.MustCompile(`^\s*(\d+)\)\s+(.+)$`)
	rspecLocRe        = regexp.MustCompile(`#\s*(\S+\.rb):(\d+)`)
	rspecSummaryRe    = regexp.MustCompile(`^(\d+) examples?, (\d+) failures?(?:, (\d+) pending)?`)
)

func NewRSpecText() parser.Parser { return RSpecText{} }

func (RSpecText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.RSpecText,
		DisplayName: "RSpec (documentation text)",
		Priority:    60,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupRuby, catalog.GroupTest},
		Aliases:     []string{"rspec"},
	}
}

func (RSpecText) CanParse(content string) bool {
	return rspecSummaryRe.MatchString(firstMatchLine(content, rspecSummaryRe)) &&
		strings.Contains(content, ".rb")
}

func (RSpecText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	inFailures := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "Failures:" {
			inFailures = true
			continue
		}
		if !inFailures {
			continue
		}
		m := rspecFailureHdrRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		block := textutil.CollectBlock(lines, i, func(l string) bool {
			t := strings.TrimSpace(l)
			return t == "" || rspecFailureHdrRe.MatchString(l)
		})
		ev := types.NewEvent("rspec", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = strings.TrimSpace(m[2])
		ev.Status = types.StatusFail
		ev.Severity = "error"
		ev.LogLineStart = int32(block.LineStart)
		ev.LogLineEnd = int32(block.LineEnd)
		ev.Message = strings.TrimSpace(block.Text)
		if loc := rspecLocRe.FindStringSubmatch(block.Text); loc != nil {
			ev.RefFile = loc[1]
			ev.RefLine = textutil.AtoiOr32(loc[2], -1)
		}
		events = append(events, ev)
	}

	for i, line := range lines {
		m := rspecSummaryRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ev := types.NewEvent("rspec", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Message = strings.TrimSpace(line)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		if textutil.AtoiOr(m[2], 0) > 0 {
			ev.Status = types.StatusError
			ev.Severity = "error"
		} else {
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		events = append(events, ev)
		break
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("rspec"))
	}
	return events, nil
}
