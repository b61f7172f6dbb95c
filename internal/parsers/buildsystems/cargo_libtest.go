package buildsystems

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// CargoTest decodes the libtest harness output `cargo test` drives:
// "test mod::name ... ok|FAILED|ignored" lines and a trailing
// "test result: ok. N passed; M failed; ..." summary.
type CargoTest struct{}

var (
	cargoTestLineRe = regexp.MustCompile(`^test (\S+) \.\.\. (ok|FAILED|ignored)`)
	cargoTestSumRe  = regexp.MustCompile(`^test result: (ok|FAILED)\. (\d+) passed; (\d+) failed;`)
	cargoFailHdrRe  = regexp.MustCompile(`^---- (\S+) stdout ----`)
)

func NewCargoTest() parser.Parser { return CargoTest{} }

func (CargoTest) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.CargoTest,
		DisplayName: "Cargo test (libtest)",
		Priority:    65,
		Category:    parser.CategoryTestFramework,
		Groups:      []string{catalog.GroupRust, catalog.GroupTest},
		Aliases:     []string{"cargo-test", "libtest"},
	}
}

func (CargoTest) CanParse(content string) bool {
	return cargoTestLineRe.MatchString(firstMatchLine(content, cargoTestLineRe)) &&
		cargoTestSumRe.MatchString(firstMatchLine(content, cargoTestSumRe))
}

func (CargoTest) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	failureOutput := map[string]string{}
	for i, line := range lines {
		if m := cargoFailHdrRe.FindStringSubmatch(line); m != nil {
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				return cargoFailHdrRe.MatchString(l) || cargoTestSumRe.MatchString(l)
			})
			failureOutput[m[1]] = strings.TrimSpace(block.Text)
		}
	}

	for i, line := range lines {
		m := cargoTestLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("cargo_test", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = m[1]
		ev.FunctionName = m[1]
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		switch m[2] {
		case "ok":
			ev.Status = types.StatusPass
			ev.Severity = "info"
		case "ignored":
			ev.Status = types.StatusSkip
			ev.Severity = "info"
		default:
			ev.Status = types.StatusFail
			ev.Severity = "error"
			ev.LogContent = failureOutput[m[1]]
		}
		events = append(events, ev)
	}

	for i, line := range lines {
		m := cargoTestSumRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("cargo_test", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Message = strings.TrimSpace(line)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		if m[1] == "ok" {
			ev.Status = types.StatusPass
			ev.Severity = "info"
		} else {
			ev.Status = types.StatusError
			ev.Severity = "error"
		}
		events = append(events, ev)
		break
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("cargo_test"))
	}
	return events, nil
}
