package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// NodeBuild decodes npm/yarn script failure output: the "npm ERR!" banner
// lines and the webpack/tsc-flavored "ERROR in file" blocks commonly
// printed underneath a failing `npm run build`.
type NodeBuild struct{}

var (
	npmErrRe     = regexp.MustCompile(`^npm ERR!\s*(.*)$`)
	webpackErrRe = regexp.MustCompile(`^ERROR in (\S+)(?:\((\d+),(\d+)\))?`)
)

func NewNodeBuild() parser.Parser { return NodeBuild{} }

func (NodeBuild) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.NodeBuild,
		DisplayName: "npm/webpack build",
		Priority:    58,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupJavaScript, catalog.GroupCI},
		Aliases:     []string{"npm-build", "webpack"},
	}
}

func (NodeBuild) CanParse(content string) bool {
	return npmErrRe.MatchString(firstMatchLine(content, npmErrRe)) ||
		webpackErrRe.MatchString(firstMatchLine(content, webpackErrRe))
}

func (NodeBuild) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		if m := webpackErrRe.FindStringSubmatch(line); m != nil {
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				t := strings.TrimSpace(l)
				return t == "" || webpackErrRe.MatchString(l) || npmErrRe.MatchString(l)
			})
			ev := types.NewEvent("node_build", types.EventTypeBuildError)
			ev.Category = "build_error"
			ev.RefFile = m[1]
			ev.RefLine = textutil.AtoiOr32(m[2], -1)
			ev.RefColumn = textutil.AtoiOr32(m[3], -1)
			ev.Status = types.StatusError
			ev.Severity = "error"
			ev.Message = strings.TrimSpace(block.Text)
			ev.LogLineStart = int32(block.LineStart)
			ev.LogLineEnd = int32(block.LineEnd)
			events = append(events, ev)
			continue
		}
		if m := npmErrRe.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[1]) != "" {
			ev := types.NewEvent("node_build", types.EventTypeBuildError)
			ev.Category = "build_error"
			ev.Status = types.StatusError
			ev.Severity = "error"
			ev.Message = strings.TrimSpace(m[1])
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("node_build"))
	}
	return events, nil
}
