package testframeworks

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// PytestCovText decodes the coverage.py summary table pytest-cov appends
// to a test run. One negative case matters for this decoder:
// the docstring-only snippet "pytest-cov plugin installed" must NOT be
// classified as pytest_cov_text; only an actual coverage banner and table
// qualify, which is why CanParse requires the banner line rather than a
// bare substring match on "pytest-cov".
type PytestCovText struct{}

var (
	covBannerRe = regexp.MustCompile(`^-+\s*coverage:.*-+$`)
	covRowRe    = regexp.MustCompile(`^(\S+\.py)\s+(\d+)\s+(\d+)\s+(\d+)%\s*$`)
)

func NewPytestCovText() parser.Parser { return PytestCovText{} }

func (PytestCovText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.PytestCovText,
		DisplayName: "pytest-cov (text)",
		Priority:    72,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupPython, catalog.GroupCoverage},
		Aliases:     []string{"pytest_cov", "pytest-cov"},
	}
}

func (PytestCovText) CanParse(content string) bool {
	lines := textutil.Lines(content)
	sawBanner := false
	for _, line := range lines {
		if covBannerRe.MatchString(strings.TrimSpace(line)) {
			sawBanner = true
			continue
		}
		if sawBanner && strings.Contains(line, "Stmts") && strings.Contains(line, "Cover") {
			return true
		}
	}
	return false
}

func (PytestCovText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent
	for i, line := range lines {
		m := covRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if strings.EqualFold(m[1], "TOTAL") {
			continue
		}
		ev := types.NewEvent("pytest-cov", types.EventTypePerformanceMetric)
		ev.Category = "coverage"
		ev.RefFile = m[1]
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		cover := textutil.AtoiOr(m[4], 0)
		ev.Message = m[1] + " coverage " + m[4] + "%"
		ev.Status = types.StatusInfo
		if cover < 80 {
			ev.Severity = "warning"
		} else {
			ev.Severity = "info"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("pytest-cov"))
	}
	return events, nil
}
