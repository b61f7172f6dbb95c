package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// CargoBuild decodes rustc's human-readable (non-JSON) diagnostics as
// emitted by `cargo build`: "error[E0382]: message" / "warning: message"
// headers followed by a "--> file:line:col" location line.
type CargoBuild struct{}

var (
	cargoDiagRe = regexp.MustCompile(`^(error|warning)(\[\w+\])?:\s*(.+)$`)
	cargoLocRe  = regexp.MustCompile(`(?m)^\s*-->\s*(\S+):(\d+):(\d+)`)
)

func NewCargoBuild() parser.Parser { return CargoBuild{} }

func (CargoBuild) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.CargoBuild,
		DisplayName: "Cargo build (rustc text)",
		Priority:    60,
		Category:    parser.CategoryBuildSystem,
		Groups:      []string{catalog.GroupRust},
		Aliases:     []string{"rustc", "cargo-build"},
	}
}

func (CargoBuild) CanParse(content string) bool {
	return cargoDiagRe.MatchString(firstMatchLine(content, cargoDiagRe)) &&
		cargoLocRe.MatchString(firstMatchLine(content, cargoLocRe))
}

func (CargoBuild) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		m := cargoDiagRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		eventType := types.EventTypeBuildError
		status := types.StatusError
		severity := "error"
		if m[1] == "warning" {
			status = types.StatusFail
			severity = "warning"
		}

		block := textutil.CollectBlock(lines, i, func(l string) bool {
			t := strings.TrimSpace(l)
			return t == "" || cargoDiagRe.MatchString(l)
		})

		ev := types.NewEvent("cargo", eventType)
		ev.Category = "build_error"
		ev.Status = status
		ev.Severity = severity
		ev.Message = strings.TrimSpace(m[3])
		ev.ErrorCode = strings.Trim(m[2], "[]")
		ev.LogContent = strings.TrimSpace(block.Text)
		ev.LogLineStart = int32(block.LineStart)
		ev.LogLineEnd = int32(block.LineEnd)
		if loc := cargoLocRe.FindStringSubmatch(block.Text); loc != nil {
			ev.RefFile = loc[1]
			ev.RefLine = textutil.AtoiOr32(loc[2], -1)
			ev.RefColumn = textutil.AtoiOr32(loc[3], -1)
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("cargo"))
	}
	return events, nil
}
