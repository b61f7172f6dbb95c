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

// JUnitXML decodes JUnit-style XML test reports. It never parses XML
// itself: it asks parser.Context for the
// xml-to-json projection and walks that JSON, which is why it implements
// parser.ContextParser and declares RequiresContext=true.
type JUnitXML struct{}

func NewJUnitXML() parser.Parser { return JUnitXML{} }

func (JUnitXML) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:      catalog.JUnitXML,
		DisplayName:     "JUnit (XML)",
		Priority:        90,
		Category:        parser.CategoryTestFramework,
		Groups:          []string{catalog.GroupJava, catalog.GroupTest},
		Aliases:         []string{"junit", "junit-xml"},
		RequiresContext: true,
	}
}

func (JUnitXML) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "<") {
		return false
	}
	return strings.Contains(t, "<testsuite") || strings.Contains(t, "<testsuites")
}

// Parse satisfies parser.Parser for callers with no Context available.
// It must never throw: a missing capability degrades to a single
// summary event carrying the remediation hint, not an error return.
func (d JUnitXML) Parse(content string) ([]types.ValidationEvent, error) {
	events, err := d.ParseWithContext(nil, content)
	if err != nil {
		ev := types.NewEvent("junit", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusError
		ev.Severity = "error"
		ev.Message = err.Error()
		return []types.ValidationEvent{ev}, nil
	}
	return events, nil
}

func (JUnitXML) ParseWithContext(ctx *parser.Context, content string) ([]types.ValidationEvent, error) {
	if !ctx.HasXMLBridge() {
		return nil, scanerr.MissingCapability("junit_xml.parse", "xml-to-json facility not available")
	}

	jsonDoc, err := ctx.XMLToJSON(content)
	if err != nil {
		return nil, scanerr.Decoder("junit_xml.parse", "failed to convert XML to JSON").Wrap(err)
	}

	var projection map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonDoc), &projection); err != nil {
		return nil, scanerr.Decoder("junit_xml.parse", "malformed xml-to-json projection").Wrap(err)
	}

	var events []types.ValidationEvent
	if raw, ok := projection["testsuites"]; ok {
		var suites junitNode
		if err := json.Unmarshal(raw, &suites); err == nil {
			for _, s := range suites.list("testsuite") {
				events = append(events, decodeJUnitSuite(s)...)
			}
		}
	} else if raw, ok := projection["testsuite"]; ok {
		var suite junitNode
		if err := json.Unmarshal(raw, &suite); err == nil {
			events = append(events, decodeJUnitSuite(suite)...)
		}
	}

	if len(events) == 0 {
		events = append(events, placeholderSummary("junit"))
	}
	return events, nil
}

// junitNode is a loosely-typed view over the xmlbridge projection: it
// knows how to read an "@attr" attribute or fetch a possibly-repeated
// child as a uniform slice, without committing to a fixed schema (the
// projection format is generic JSON, not a JUnit-specific one).
type junitNode map[string]interface{}

func (n junitNode) attr(name string) string {
	v, _ := n["@"+name].(string)
	return v
}

func (n junitNode) text() string {
	v, _ := n["#text"].(string)
	return v
}

func (n junitNode) list(tag string) []junitNode {
	raw, ok := n[tag]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []interface{}:
		out := make([]junitNode, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, junitNode(m))
			}
		}
		return out
	case map[string]interface{}:
		return []junitNode{junitNode(v)}
	}
	return nil
}

func decodeJUnitSuite(suite junitNode) []types.ValidationEvent {
	suiteName := suite.attr("name")
	var events []types.ValidationEvent
	for _, tc := range suite.list("testcase") {
		ev := types.NewEvent("junit", types.EventTypeTestResult)
		ev.Category = "test_result"
		ev.TestName = tc.attr("name")
		ev.FunctionName = fmt.Sprintf("%s::%s", suiteName, tc.attr("name"))
		if t := tc.attr("time"); t != "" {
			if f, ok := parseFloatAttr(t); ok {
				ev.ExecutionTime = f * 1000
				ev.HasExecutionTime = true
			}
		}

		failures := tc.list("failure")
		errs := tc.list("error")
		skips := tc.list("skipped")
		switch {
		case len(failures) > 0:
			ev.Status = types.StatusFail
			ev.Severity = "error"
			ev.Message = failures[0].attr("message")
			ev.LogContent = failures[0].text()
		case len(errs) > 0:
			ev.Status = types.StatusError
			ev.Severity = "error"
			ev.Message = errs[0].attr("message")
			ev.LogContent = errs[0].text()
		case len(skips) > 0:
			ev.Status = types.StatusSkip
			ev.Severity = "info"
		default:
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		events = append(events, ev)
	}
	return events
}

func parseFloatAttr(s string) (float64, bool) {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	return f, err == nil
}
