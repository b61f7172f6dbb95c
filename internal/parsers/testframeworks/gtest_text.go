package testframeworks

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// GTestText decodes GoogleTest's bracketed console output: "[ RUN ]",
// "[ OK ]"/"[ FAILED ]" results, and the failure detail lines in between.
type GTestText struct{}

var (
	gtestRunRe    = regexp.MustCompile(`^\[ RUN\s*\] (\S+)`)
	gtestResultRe = regexp.MustCompile(`^\[\s*(OK|FAILED)\s*\] (\S+)(?: \((\d+) ms\))?`)
	gtestFailLoc  = regexp.MustCompile(`^(\S+\.(?:cc|cpp|cxx|h|hpp)):(\d+):\s*(.*)$`)
)

func NewGTestText() parser.Parser { return GTestText{} }

func (GTestText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.GTestText,
		DisplayName: "GoogleTest (console text)",
		Priority:    70,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupCCpp, catalog.GroupTest},
		Aliases:     []string{"gtest", "googletest"},
	}
}

func (GTestText) CanParse(content string) bool {
	return strings.Contains(content, "[ RUN") && (strings.Contains(content, "[       OK ]") ||
		strings.Contains(content, "[  FAILED  ]") || strings.Contains(content, "[==========]"))
}

func (GTestText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent
	seenTest := map[string]bool{}

	for i, line := range lines {
		m := gtestResultRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[2]
		if seenTest[m[1]+name] {
			// GoogleTest repeats "[ FAILED ] Name" in its final summary
			// list; only the first (inline, with timing) occurrence is a
			// result event.
			continue
		}

		ev := types.NewEvent("gtest", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = name
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		if m[3] != "" {
			ev.ExecutionTime = textutil.ParseFloatOr(m[3], 0)
			ev.HasExecutionTime = true
			seenTest[m[1]+name] = true
		}

		if m[1] == "OK" {
			ev.Status = types.StatusPass
			ev.Severity = "info"
		} else {
			ev.Status = types.StatusFail
			ev.Severity = "error"
			block := textutil.CollectBlock(lines, findRunLine(lines, name, i), func(l string) bool {
				return gtestResultRe.MatchString(l)
			})
			ev.LogLineStart = int32(block.LineStart)
			ev.LogLineEnd = int32(block.LineEnd)
			if loc := gtestFailLoc.FindStringSubmatch(firstMatchLine(block.Text, gtestFailLoc)); loc != nil {
				ev.RefFile = loc[1]
				ev.RefLine = textutil.AtoiOr32(loc[2], -1)
				ev.Message = strings.TrimSpace(loc[3])
			} else {
				ev.Message = strings.TrimSpace(block.Text)
			}
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("gtest"))
	}
	return events, nil
}

// findRunLine looks backward from before idx for the "[ RUN ] name" line
// that opened this test, defaulting to idx itself if none is found (the
// block then starts at the result line itself).
func findRunLine(lines []string, name string, before int) int {
	for i := before - 1; i >= 0; i-- {
		if m := gtestRunRe.FindStringSubmatch(lines[i]); m != nil && m[1] == name {
			return i
		}
	}
	return before
}
