package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// MSBuild decodes the MSBuild/csc diagnostic line format:
// "file(line,col): error|warning CODE: message [project]".
type MSBuild struct{}

var (
	msbuildDiagRe  = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\):\s*(error|warning)\s+(\S+):\s*(.+?)(?:\s*\[.+\])?$`)
	msbuildBuildRe = regexp.MustCompile(`^Build (succeeded|FAILED)\.?`)
)

func NewMSBuild() parser.Parser { return MSBuild{} }

func (MSBuild) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.MSBuild,
		DisplayName: "MSBuild",
		Priority:    60,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupDotNet, catalog.GroupCI},
		Aliases:     []string{"msbuild-log", "csc"},
	}
}

func (MSBuild) CanParse(content string) bool {
	return msbuildDiagRe.MatchString(firstMatchLine(content, msbuildDiagRe))
}

func (MSBuild) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		if m := msbuildDiagRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("msbuild", types.EventTypeBuildError)
			ev.Category = "build_error"
			ev.RefFile = m[1]
			ev.RefLine = textutil.AtoiOr32(m[2], -1)
			ev.RefColumn = textutil.AtoiOr32(m[3], -1)
			ev.ErrorCode = m[5]
			ev.Message = strings.TrimSpace(m[6])
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[4] == "warning" {
				ev.Status = types.StatusFail
				ev.Severity = "warning"
			} else {
				ev.Status = types.StatusError
				ev.Severity = "error"
			}
			events = append(events, ev)
			continue
		}
		if m := msbuildBuildRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("msbuild", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = strings.TrimSpace(line)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[1] == "succeeded" {
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
		events = append(events, placeholderSummary("msbuild"))
	}
	return events, nil
}
