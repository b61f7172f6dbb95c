package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// CMake decodes CTest's "Test #N: name ......   Passed   0.01 sec" summary
// lines together with CMake's own "CMake Error at file:line (message):"
// configure-time diagnostics.
type CMake struct{}

var (
	ctestResultRe = regexp.MustCompile(`^\s*Test\s+#\d+:\s+(\S+)\s+\.+\s*(\*?\*?\w+(?:\s\w+)?)\s+([\d.]+)\s*sec`)
	cmakeErrorRe  = regexp.MustCompile(`^CMake (Error|Warning) at ([^:]+):(\d+)(?:\s*\((.+)\))?:`)
)

func NewCMake() parser.Parser { return CMake{} }

func (CMake) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.CMake,
		DisplayName: "CMake/CTest",
		Priority:    62,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupCCpp, catalog.GroupTest},
		Aliases:     []string{"ctest"},
	}
}

func (CMake) CanParse(content string) bool {
	return ctestResultRe.MatchString(firstMatchLine(content, ctestResultRe)) ||
		cmakeErrorRe.MatchString(firstMatchLine(content, cmakeErrorRe))
}

func (CMake) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		if m := ctestResultRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("ctest", types.EventTypeTestResult)
			ev.Category = "test_result"
			ev.TestName = m[1]
			ev.FunctionName = m[1]
			ev.ExecutionTime = textutil.ParseFloatOr(m[3], 0) * 1000
			ev.HasExecutionTime = true
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if strings.Contains(strings.ToLower(m[2]), "fail") {
				ev.Status = types.StatusFail
				ev.Severity = "error"
			} else {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			}
			events = append(events, ev)
			continue
		}
		if m := cmakeErrorRe.FindStringSubmatch(line); m != nil {
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				t := strings.TrimSpace(l)
				return t == "" || cmakeErrorRe.MatchString(l) || ctestResultRe.MatchString(l)
			})
			ev := types.NewEvent("cmake", types.EventTypeBuildError)
			ev.Category = "build_error"
			ev.RefFile = m[2]
			ev.RefLine = textutil.AtoiOr32(m[3], -1)
			ev.FunctionName = m[4]
			ev.Message = strings.TrimSpace(block.Text)
			ev.LogLineStart = int32(block.LineStart)
			ev.LogLineEnd = int32(block.LineEnd)
			if m[1] == "Warning" {
				ev.Status = types.StatusFail
				ev.Severity = "warning"
			} else {
				ev.Status = types.StatusError
				ev.Severity = "error"
			}
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("cmake"))
	}
	return events, nil
}
