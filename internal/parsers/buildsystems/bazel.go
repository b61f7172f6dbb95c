// Package buildsystems decodes the textual test/build summaries emitted
// by Bazel, CMake/CTest, Gradle, Maven, Cargo, and MSBuild.
package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Bazel decodes `bazel test`'s one-line-per-target result summary:
// "PASSED: //pkg:target (1.25s)" / "FAILED: //pkg:target" / "TIMEOUT: ...".
type Bazel struct{}

var bazelResultRe = regexp.MustCompile(`^(PASSED|FAILED|TIMEOUT|FLAKY|NO STATUS): (\S+)(?:\s+\(([\d.]+)s\))?`)

func NewBazel() parser.Parser { return Bazel{} }

func (Bazel) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Bazel,
		DisplayName: "Bazel test result",
		Priority:    65,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupCI, catalog.GroupTest},
		Aliases:     []string{"bazel"},
	}
}

func (Bazel) CanParse(content string) bool {
	return bazelResultRe.MatchString(firstMatchLine(content, bazelResultRe))
}

func (Bazel) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		m := bazelResultRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ev := types.NewEvent("bazel", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = m[2]
		ev.FunctionName = m[2]
		if m[3] != "" {
			ev.ExecutionTime = textutil.ParseFloatOr(m[3], 0)
			ev.HasExecutionTime = true
		}
		switch m[1] {
		case "PASSED":
			ev.Status = types.StatusPass
			ev.Severity = "info"
		case "FLAKY":
			ev.Status = types.StatusPass
			ev.Severity = "warning"
		case "TIMEOUT":
			ev.Status = types.StatusError
			ev.Severity = "error"
		default:
			ev.Status = types.StatusFail
			ev.Severity = "error"
		}
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		events = append(events, ev)
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("bazel"))
	}
	return events, nil
}

func firstMatchLine(content string, re *regexp.Regexp) string {
	for _, line := range textutil.Lines(content) {
		if re.MatchString(strings.TrimSpace(line)) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func placeholderSummary(tool string) types.ValidationEvent {
	ev := types.NewEvent(tool, types.EventTypeSummary)
	ev.Category = "summary"
	ev.Status = types.StatusPass
	ev.Severity = "info"
	ev.Message = "no records found"
	return ev
}
