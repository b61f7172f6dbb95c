package testframeworks

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// MochaChaiText decodes Mocha's default "spec" reporter output (Chai
// assertion failures included): tick/cross-marked example lines and a
// "N passing (Xms)" / "N failing" summary pair.
type MochaChaiText struct{}

var (
	mochaPassRe    = regexp.MustCompile(`^\s*(?:✓|√)\s+(.+)$`)
	mochaFailHdrRe = regexp.MustCompile(`^\s*(\d+)\)\s+(.+?):?\s*$`)
	mochaSummaryRe = regexp.MustCompile(`^\s*(\d+) passing(?: \((\d+)ms\))?\s*$`)
	mochaFailingRe = regexp.MustCompile(`^\s*(\d+) failing\s*$`)
	mochaLocRe     = regexp.MustCompile(`\((\S+\.js):(\d+):(\d+)\)`)
)

func NewMochaChaiText() parser.Parser { return MochaChaiText{} }

func (MochaChaiText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.MochaChaiText,
		DisplayName: "Mocha/Chai (spec reporter text)",
		Priority:    58,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupJavaScript, catalog.GroupTest},
		Aliases:     []string{"mocha", "chai"},
	}
}

func (MochaChaiText) CanParse(content string) bool {
	return mochaSummaryRe.MatchString(firstMatchLine(content, mochaSummaryRe)) &&
		strings.Contains(content, ".js")
}

func (MochaChaiText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent
	passed, failed := 0, 0

	for i, line := range lines {
		if m := mochaPassRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("mocha", types.EventTypeTestResult)
			ev.Category = "test_result"
			ev.TestName = strings.TrimSpace(m[1])
			ev.Status = types.StatusPass
			ev.Severity = "info"
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			events = append(events, ev)
			passed++
			continue
		}
		if m := mochaFailHdrRe.FindStringSubmatch(line); m != nil {
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				t := strings.TrimSpace(l)
				return t == "" || mochaFailHdrRe.MatchString(l)
			})
			ev := types.NewEvent("mocha", types.EventTypeTestResult)
			ev.Category = "test_result"
			ev.TestName = strings.TrimSpace(m[2])
			ev.Status = types.StatusFail
			ev.Severity = "error"
			ev.LogLineStart = int32(block.LineStart)
			ev.LogLineEnd = int32(block.LineEnd)
			ev.Message = strings.TrimSpace(block.Text)
			if loc := mochaLocRe.FindStringSubmatch(block.Text); loc != nil {
				ev.RefFile = loc[1]
				ev.RefLine = textutil.AtoiOr32(loc[2], -1)
				ev.RefColumn = textutil.AtoiOr32(loc[3], -1)
			}
			events = append(events, ev)
			failed++
		}
	}

	for i, line := range lines {
		if m := mochaSummaryRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("mocha", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = strings.TrimSpace(line)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if failed > 0 || mochaFailingRe.MatchString(strings.TrimSpace(lines[minInt(i+2, len(lines)-1)])) {
				ev.Status = types.StatusError
				ev.Severity = "error"
			} else {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			}
			_ = passed
			events = append(events, ev)
			break
		}
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("mocha"))
	}
	return events, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
