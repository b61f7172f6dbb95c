package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Maven decodes the Surefire plugin's console summary block:
// "Tests run: N, Failures: N, Errors: N, Skipped: N" per module, plus the
// closing "BUILD SUCCESS"/"BUILD FAILURE" banner.
type Maven struct{}

var (
	mavenRunningRe = regexp.MustCompile(`^Running ([\w.$]+)`)
	mavenSummaryRe = regexp.MustCompile(`^Tests run:\s*(\d+),\s*Failures:\s*(\d+),\s*Errors:\s*(\d+),\s*Skipped:\s*(\d+)`)
	mavenBuildRe   = regexp.MustCompile(`^BUILD (SUCCESS|FAILURE)`)
)

func NewMaven() parser.Parser { return Maven{} }

func (Maven) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Maven,
		DisplayName: "Maven (Surefire)",
		Priority:    60,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupJava, catalog.GroupCI},
		Aliases:     []string{"surefire"},
	}
}

func (Maven) CanParse(content string) bool {
	return mavenBuildRe.MatchString(firstMatchLine(content, mavenBuildRe)) &&
		mavenRunningRe.MatchString(firstMatchLine(content, mavenRunningRe))
}

func (Maven) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent
	currentClass := ""

	for i, line := range lines {
		if m := mavenRunningRe.FindStringSubmatch(line); m != nil {
			currentClass = m[1]
			continue
		}
		if m := mavenSummaryRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("maven", types.EventTypeSummary)
			ev.Category = "summary"
			ev.TestName = currentClass
			ev.FunctionName = currentClass
			ev.Message = strings.TrimSpace(line)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if textutil.AtoiOr(m[2], 0) > 0 || textutil.AtoiOr(m[3], 0) > 0 {
				ev.Status = types.StatusFail
				ev.Severity = "error"
			} else {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			}
			events = append(events, ev)
			continue
		}
		if m := mavenBuildRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("maven", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = strings.TrimSpace(line)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[1] == "SUCCESS" {
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
		events = append(events, placeholderSummary("maven"))
	}
	return events, nil
}
