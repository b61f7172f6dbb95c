// Package ci decodes CI-engine-specific console annotations, currently
// GitHub Actions' workflow command syntax.
package ci

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// GitHubActions decodes the "::error file=...,line=...::message" and
// "::warning ...::message" workflow-command annotations GitHub Actions
// runners print, plus the "##[group]"/"##[endgroup]" step markers used
// to scope messages to the step they belong to.
type GitHubActions struct{}

var (
	ghaAnnotationRe = regexp.MustCompile(`^::(error|warning|notice)\s*([^:]*)::(.*)$`)
	ghaKVRe         = regexp.MustCompile(`(\w+)=([^,]*)`)
	ghaGroupRe      = regexp.MustCompile(`^##\[group\](.*)$`)
)

func NewGitHubActions() parser.Parser { return GitHubActions{} }

func (GitHubActions) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.GitHubActions,
		DisplayName: "GitHub Actions annotations",
		Priority:    68,
		Category:    parser.CategoryCI,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"github-actions", "gha"},
	}
}

func (GitHubActions) CanParse(content string) bool {
	return ghaAnnotationRe.MatchString(firstMatchLine(content, ghaAnnotationRe))
}

func (GitHubActions) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent
	currentGroup := ""

	for i, line := range lines {
		if m := ghaGroupRe.FindStringSubmatch(line); m != nil {
			currentGroup = strings.TrimSpace(m[1])
			continue
		}
		if strings.HasPrefix(line, "##[endgroup]") {
			currentGroup = ""
			continue
		}
		m := ghaAnnotationRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("github_actions", types.EventTypeBuildError)
		ev.Category = "build_error"
		ev.Message = strings.TrimSpace(m[3])
		ev.Scope = currentGroup
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)

		for _, kv := range ghaKVRe.FindAllStringSubmatch(m[2], -1) {
			switch kv[1] {
			case "file":
				ev.RefFile = kv[2]
			case "line":
				ev.RefLine = textutil.AtoiOr32(kv[2], -1)
			case "col":
				ev.RefColumn = textutil.AtoiOr32(kv[2], -1)
			}
		}

		switch m[1] {
		case "error":
			ev.Status = types.StatusFail
			ev.Severity = "error"
		case "warning":
			ev.Status = types.StatusFail
			ev.Severity = "warning"
		default:
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("github_actions", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func firstMatchLine(content string, re *regexp.Regexp) string {
	for _, line := range textutil.Lines(content) {
		if re.MatchString(line) {
			return line
		}
	}
	return ""
}
