package testframeworks

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// GoTestText decodes `go test -v` output: "=== RUN" markers, "--- PASS:" /
// "--- FAIL:" / "--- SKIP:" results, indented failure detail lines, and a
// trailing "ok"/"FAIL" package summary line.
type GoTestText struct{}

var (
	goTestRunRe    = regexp.MustCompile(`^=== RUN\s+(\S+)`)
	goTestResultRe = regexp.MustCompile(`^--- (PASS|FAIL|SKIP): (\S+) \(([\d.]+)s\)`)
	goTestPkgRe    = regexp.MustCompile(`^(ok|FAIL)\s+(\S+)\s+([\d.]+)s`)
)

func NewGoTestText() parser.Parser { return GoTestText{} }

func (GoTestText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.GoTestText,
		DisplayName: "go test (verbose text)",
		Priority:    75,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupGo, catalog.GroupTest},
		Aliases:     []string{"go_test", "gotest"},
	}
}

func (GoTestText) CanParse(content string) bool {
	return strings.Contains(content, "=== RUN") && strings.Contains(content, "--- PASS:") ||
		strings.Contains(content, "=== RUN") && strings.Contains(content, "--- FAIL:")
}

func (GoTestText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		if m := goTestResultRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("go_test", types.EventTypeTestResult)
			ev.Category = "test_result"
			ev.TestName = m[2]
			ev.ExecutionTime = textutil.ParseFloatOr(m[3], 0) * 1000
			ev.HasExecutionTime = true
			ev.LogLineStart = int32(i + 1)

			switch m[1] {
			case "PASS":
				ev.Status = types.StatusPass
				ev.Severity = "info"
				ev.LogLineEnd = int32(i + 1)
			case "SKIP":
				ev.Status = types.StatusSkip
				ev.Severity = "info"
				ev.LogLineEnd = int32(i + 1)
			case "FAIL":
				ev.Status = types.StatusFail
				ev.Severity = "error"
				block := collectIndentedDetail(lines, i)
				ev.LogLineEnd = int32(block.LineEnd)
				if len(block.Lines) > 0 {
					ev.Message = strings.Join(block.Lines, "\n")
					if file, ln, msg, ok := parseGoTestDetailLine(block.Lines[0]); ok {
						ev.RefFile = file
						ev.RefLine = ln
						ev.Message = msg
					}
				}
			}
			events = append(events, ev)
			continue
		}

		if m := goTestPkgRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("go_test", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = strings.TrimSpace(line)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[1] == "ok" {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			} else {
				ev.Status = types.StatusError
				ev.Severity = "error"
			}
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("go_test"))
	}
	return events, nil
}

type indentedBlock struct {
	Lines   []string
	LineEnd int
}

// collectIndentedDetail gathers the indented detail lines that follow a
// "--- FAIL:" header, stopping at the first non-indented line.
func collectIndentedDetail(lines []string, headerIdx int) indentedBlock {
	end := headerIdx
	var detail []string
	for i := headerIdx + 1; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "    ") && !strings.HasPrefix(lines[i], "\t") {
			break
		}
		detail = append(detail, strings.TrimSpace(lines[i]))
		end = i
	}
	return indentedBlock{Lines: detail, LineEnd: end + 1}
}

var goTestDetailLocRe = regexp.MustCompile(`^(\S+\.go):(\d+):\s*(.*)$`)

func parseGoTestDetailLine(line string) (file string, lineNo int32, message string, ok bool) {
	m := goTestDetailLocRe.FindStringSubmatch(line)
	if m == nil {
		return "", -1, "", false
	}
	return m[1], textutil.AtoiOr32(m[2], -1), strings.TrimSpace(m[3]), true
}
