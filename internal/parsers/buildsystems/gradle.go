package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Gradle decodes the console output of `gradle build`/`gradle test`:
// per-task "> Task :module:task" lines, per-test "ClassName > method FAILED"
// result lines, and the closing "BUILD SUCCESSFUL"/"BUILD FAILED" banner.
type Gradle struct{}

var (
	gradleTaskRe   = regexp.MustCompile(`^> Task (\S+)`)
	gradleTestRe   = regexp.MustCompile(`^([\w.$]+) > (\S+) (PASSED|FAILED|SKIPPED)`)
	gradleBuildRe  = regexp.MustCompile(`^BUILD (SUCCESSFUL|FAILED)`)
	gradleWhereRe  = regexp.MustCompile(`at ([\w.$]+)\.(\w+)\(([\w.]+):(\d+)\)`)
)

func NewGradle() parser.Parser { return Gradle{} }

func (Gradle) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Gradle,
		DisplayName: "Gradle",
		Priority:    60,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupJava, catalog.GroupCI},
		Aliases:     []string{"gradle-build"},
	}
}

func (Gradle) CanParse(content string) bool {
	return gradleBuildRe.MatchString(firstMatchLine(content, gradleBuildRe)) &&
		(strings.Contains(content, "> Task ") || gradleTestRe.MatchString(firstMatchLine(content, gradleTestRe)))
}

func (Gradle) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		if m := gradleTestRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("gradle", types.EventTypeTestResult)
			ev.Category = "test_result"
			ev.TestName = m[2]
			ev.FunctionName = m[1] + "::" + m[2]
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			switch m[3] {
			case "PASSED":
				ev.Status = types.StatusPass
				ev.Severity = "info"
			case "SKIPPED":
				ev.Status = types.StatusSkip
				ev.Severity = "info"
			default:
				block := textutil.CollectBlock(lines, i, func(l string) bool {
					return gradleTestRe.MatchString(l) || gradleBuildRe.MatchString(l)
				})
				ev.Status = types.StatusFail
				ev.Severity = "error"
				ev.LogLineEnd = int32(block.LineEnd)
				ev.Message = strings.TrimSpace(block.Text)
				if loc := gradleWhereRe.FindStringSubmatch(block.Text); loc != nil {
					ev.RefFile = loc[3]
					ev.RefLine = textutil.AtoiOr32(loc[4], -1)
				}
			}
			events = append(events, ev)
			continue
		}
		if m := gradleBuildRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("gradle", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = strings.TrimSpace(line)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[1] == "SUCCESSFUL" {
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
		events = append(events, placeholderSummary("gradle"))
	}
	return events, nil
}
