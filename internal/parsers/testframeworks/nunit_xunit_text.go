package testframeworks

import (
	"encoding/json"
	"fmt"
	"strings"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/scanerr"
	"devlogscan/pkg/types"
)

// NUnitXUnit decodes NUnit3 and xUnit.net XML result files. Both runners
// emit a <test-case>/<test> leaf per test under nested suite/collection
// elements, spelled slightly differently (NUnit: test-case/result
// Passed|Failed; xUnit: test/result pass|fail|skip), so this decoder
// normalizes both shapes through the same xmlbridge projection rather
// than carrying two separate parsers.
type NUnitXUnit struct{}

func NewNUnitXUnit() parser.Parser { return NUnitXUnit{} }

func (NUnitXUnit) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:      catalog.NUnitXUnitText,
		DisplayName:     "NUnit/xUnit (XML)",
		Priority:        85,
		Category:        parser.CategoryTestFramework,
		Groups:          []string{catalog.GroupDotNet, catalog.GroupTest},
		Aliases:         []string{"nunit", "xunit"},
		RequiresContext: true,
	}
}

func (NUnitXUnit) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "<") {
		return false
	}
	return strings.Contains(t, "<test-run") || strings.Contains(t, "<assemblies") || strings.Contains(t, "<assembly")
}

func (d NUnitXUnit) Parse(content string) ([]types.ValidationEvent, error) {
	events, err := d.ParseWithContext(nil, content)
	if err != nil {
		ev := types.NewEvent("nunit_xunit", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusError
		ev.Severity = "error"
		ev.Message = err.Error()
		return []types.ValidationEvent{ev}, nil
	}
	return events, nil
}

func (NUnitXUnit) ParseWithContext(ctx *parser.Context, content string) ([]types.ValidationEvent, error) {
	if !ctx.HasXMLBridge() {
		return nil, scanerr.MissingCapability("nunit_xunit.parse", "xml-to-json facility not available")
	}

	jsonDoc, err := ctx.XMLToJSON(content)
	if err != nil {
		return nil, scanerr.Decoder("nunit_xunit.parse", "failed to convert XML to JSON").Wrap(err)
	}

	var projection map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonDoc), &projection); err != nil {
		return nil, scanerr.Decoder("nunit_xunit.parse", "malformed xml-to-json projection").Wrap(err)
	}

	var events []types.ValidationEvent
	for rootTag, raw := range projection {
		var root junitNode
		if err := json.Unmarshal(raw, &root); err != nil {
			continue
		}
		switch rootTag {
		case "test-run":
			events = append(events, walkNUnitSuite(root)...)
		case "assemblies":
			for _, asm := range root.list("assembly") {
				events = append(events, walkXUnitCollections(asm)...)
			}
		case "assembly":
			events = append(events, walkXUnitCollections(root)...)
		}
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("nunit_xunit"))
	}
	return events, nil
}

// walkNUnitSuite recurses through NUnit3's nested test-suite elements,
// emitting one event per test-case leaf regardless of nesting depth.
func walkNUnitSuite(n junitNode) []types.ValidationEvent {
	var events []types.ValidationEvent
	suiteName := n.attr("fullname")
	if suiteName == "" {
		suiteName = n.attr("name")
	}
	for _, tc := range n.list("test-case") {
		ev := types.NewEvent("nunit", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = tc.attr("name")
		ev.FunctionName = tc.attr("fullname")
		if ev.FunctionName == "" {
			ev.FunctionName = fmt.Sprintf("%s::%s", suiteName, tc.attr("name"))
		}
		if f, ok := parseFloatAttr(tc.attr("duration")); ok {
			ev.ExecutionTime = f * 1000
			ev.HasExecutionTime = true
		}
		switch tc.attr("result") {
		case "Passed":
			ev.Status = types.StatusPass
			ev.Severity = "info"
		case "Failed":
			ev.Status = types.StatusFail
			ev.Severity = "error"
			if failures := tc.list("failure"); len(failures) > 0 {
				msgs := failures[0].list("message")
				if len(msgs) > 0 {
					ev.Message = msgs[0].text()
				}
				stacks := failures[0].list("stack-trace")
				if len(stacks) > 0 {
					ev.LogContent = stacks[0].text()
				}
			}
		case "Skipped":
			ev.Status = types.StatusSkip
			ev.Severity = "info"
		default:
			ev.Status = types.StatusError
			ev.Severity = "error"
		}
		events = append(events, ev)
	}
	for _, child := range n.list("test-suite") {
		events = append(events, walkNUnitSuite(child)...)
	}
	return events
}

// walkXUnitCollections walks an xUnit.net <assembly><collection><test/>
// tree, one level shallower than NUnit's but otherwise parallel.
func walkXUnitCollections(assembly junitNode) []types.ValidationEvent {
	var events []types.ValidationEvent
	for _, coll := range assembly.list("collection") {
		collName := coll.attr("name")
		for _, tc := range coll.list("test") {
			ev := types.NewEvent("xunit", types.EventTypeTestResult)
			ev.Category = "test_result"
			ev.TestName = tc.attr("name")
			ev.FunctionName = fmt.Sprintf("%s::%s", collName, tc.attr("method"))
			if f, ok := parseFloatAttr(tc.attr("time")); ok {
				ev.ExecutionTime = f * 1000
				ev.HasExecutionTime = true
			}
			switch strings.ToLower(tc.attr("result")) {
			case "pass":
				ev.Status = types.StatusPass
				ev.Severity = "info"
			case "fail":
				ev.Status = types.StatusFail
				ev.Severity = "error"
				if failures := tc.list("failure"); len(failures) > 0 {
					msgs := failures[0].list("message")
					if len(msgs) > 0 {
						ev.Message = msgs[0].text()
					}
					stacks := failures[0].list("stack-trace")
					if len(stacks) > 0 {
						ev.LogContent = stacks[0].text()
					}
				}
			case "skip":
				ev.Status = types.StatusSkip
				ev.Severity = "info"
			default:
				ev.Status = types.StatusError
				ev.Severity = "error"
			}
			events = append(events, ev)
		}
	}
	return events
}
