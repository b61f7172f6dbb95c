package testframeworks

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// JUnitText decodes the plain-text per-test-case output JUnit runners
// (and Surefire-style wrappers) print alongside their XML report:
// "name(Class)  Time elapsed: N sec[ <<< FAILURE!]" lines followed by a
// stack trace on failure, and a trailing "Tests run: N, Failures: N, ..."
// summary.
type JUnitText struct{}

var (
	junitTextCaseRe = regexp.MustCompile(`^(\S+)\(([\w.$]+)\)\s+Time elapsed:\s*([\d.]+)\s*sec(\s*<<<\s*(FAILURE|ERROR)!?)?`)
	junitTextSumRe  = regexp.MustCompile(`^Tests run:\s*(\d+),\s*Failures:\s*(\d+),\s*Errors:\s*(\d+),\s*Skipped:\s*(\d+)`)
	junitTextLocRe  = regexp.MustCompile(`\(([\w.$]+)\.java:(\d+)\)`)
)

func NewJUnitText() parser.Parser { return JUnitText{} }

func (JUnitText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.JUnitText,
		DisplayName: "JUnit (text)",
		Priority:    55,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupJava, catalog.GroupTest},
		Aliases:     []string{"junit-text"},
	}
}

func (JUnitText) CanParse(content string) bool {
	return junitTextCaseRe.MatchString(firstMatchLine(content, junitTextCaseRe)) &&
		junitTextSumRe.MatchString(firstMatchLine(content, junitTextSumRe))
}

func (JUnitText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		m := junitTextCaseRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("junit", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = m[1]
		ev.FunctionName = m[2] + "::" + m[1]
		ev.ExecutionTime = textutil.ParseFloatOr(m[3], 0) * 1000
		ev.HasExecutionTime = true

		if m[5] == "" {
			ev.Status = types.StatusPass
			ev.Severity = "info"
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
		} else {
			if m[5] == "ERROR" {
				ev.Status = types.StatusError
			} else {
				ev.Status = types.StatusFail
			}
			ev.Severity = "error"
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				return junitTextCaseRe.MatchString(l) || junitTextSumRe.MatchString(l)
			})
			ev.LogLineStart = int32(block.LineStart)
			ev.LogLineEnd = int32(block.LineEnd)
			if parts := strings.SplitN(block.Text, "\n", 2); len(parts) > 1 {
				ev.Message = strings.TrimSpace(parts[1])
			}
			if loc := junitTextLocRe.FindStringSubmatch(block.Text); loc != nil {
				ev.RefFile = loc[1] + ".java"
				ev.RefLine = textutil.AtoiOr32(loc[2], -1)
			}
		}
		events = append(events, ev)
	}

	for i, line := range lines {
		m := junitTextSumRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("junit", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Message = strings.TrimSpace(line)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		if textutil.AtoiOr(m[2], 0) > 0 || textutil.AtoiOr(m[3], 0) > 0 {
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
		events = append(events, placeholderSummary("junit"))
	}
	return events, nil
}
