package testframeworks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/internal/xmlbridge"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

const pytestSample = `test_a.py::test_ok PASSED
test_a.py::test_bad FAILED
============= FAILURES =============
___ test_bad ___
test_a.py:7: AssertionError: expected 1 got 2
============= 1 passed, 1 failed in 0.12s =============`

func TestPytestTextTwoPassEnrichment(t *testing.T) {
	require.True(t, PytestText{}.CanParse(pytestSample))
	events, err := PytestText{}.Parse(pytestSample)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "test_a.py", events[0].RefFile)
	assert.Equal(t, "test_ok", events[0].TestName)
	assert.Equal(t, int32(1), events[0].LogLineStart)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "test_a.py", events[1].RefFile)
	assert.Equal(t, int32(7), events[1].RefLine)
	assert.Equal(t, "AssertionError: expected 1 got 2", events[1].Message)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
	assert.Equal(t, "1 passed, 1 failed in 0.12s", events[2].Message)
	assert.Equal(t, int32(6), events[2].LogLineStart)
}

func TestPytestTextAllPassingSummaryIsPass(t *testing.T) {
	content := "test_a.py::test_ok PASSED\n=== 1 passed in 0.01s ==="
	events, err := PytestText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, types.StatusPass, events[1].Status)
}

func TestPytestJSONReport(t *testing.T) {
	content := `{"tests":[` +
		`{"nodeid":"test_a.py::test_ok","outcome":"passed","duration":0.01},` +
		`{"nodeid":"test_a.py::test_bad","outcome":"failed","duration":0.02,"call":{"longrepr":"AssertionError"}}` +
		`],"summary":{"passed":1,"failed":1}}`

	require.True(t, PytestJSON{}.CanParse(content))
	events, err := PytestJSON{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "test_a.py", events[0].RefFile)
	assert.Equal(t, "test_a.py::test_ok", events[0].TestName)
	assert.InDelta(t, 10.0, events[0].ExecutionTime, 1e-9)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "AssertionError", events[1].Message)
}

func TestPytestJSONMalformedDegradesToSummary(t *testing.T) {
	events, err := PytestJSON{}.Parse(`{"tests": not json`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeSummary, events[0].EventType)
}

func TestPytestCovTable(t *testing.T) {
	content := `---------- coverage: platform linux, python 3.11 ----------
Name        Stmts   Miss  Cover
-------------------------------
foo.py         10      2    80%
bar.py         20     10    50%
TOTAL          30     12    60%`

	require.True(t, PytestCovText{}.CanParse(content))
	events, err := PytestCovText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, types.EventTypePerformanceMetric, events[0].EventType)
	assert.Equal(t, "coverage", events[0].Category)
	assert.Equal(t, "foo.py", events[0].RefFile)
	assert.Equal(t, "info", events[0].Severity)

	assert.Equal(t, "bar.py coverage 50%", events[1].Message)
	assert.Equal(t, "warning", events[1].Severity)
}

// A docstring mentioning the plugin is not a coverage report.
func TestPytestCovRejectsDocstringSnippet(t *testing.T) {
	assert.False(t, PytestCovText{}.CanParse("pytest-cov plugin installed"))
}

func TestGoTestVerboseOutput(t *testing.T) {
	content := "=== RUN   TestOK\n" +
		"--- PASS: TestOK (0.01s)\n" +
		"=== RUN   TestBad\n" +
		"--- FAIL: TestBad (0.02s)\n" +
		"    main_test.go:10: expected 1 got 2\n" +
		"FAIL\texample.com/pkg\t0.030s"

	require.True(t, GoTestText{}.CanParse(content))
	events, err := GoTestText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "TestOK", events[0].TestName)
	assert.InDelta(t, 10.0, events[0].ExecutionTime, 1e-9)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "main_test.go", events[1].RefFile)
	assert.Equal(t, int32(10), events[1].RefLine)
	assert.Equal(t, "expected 1 got 2", events[1].Message)
	assert.Equal(t, int32(4), events[1].LogLineStart)
	assert.Equal(t, int32(5), events[1].LogLineEnd)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
}

func TestGTestFailureBlockSpansRunToResult(t *testing.T) {
	content := `[==========] Running 2 tests from 1 test suite.
[ RUN      ] Suite.Ok
[       OK ] Suite.Ok (0 ms)
[ RUN      ] Suite.Bad
bad_test.cc:12: Failure
Expected equality of these values
[  FAILED  ] Suite.Bad (1 ms)`

	require.True(t, GTestText{}.CanParse(content))
	events, err := GTestText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "Suite.Ok", events[0].TestName)

	bad := events[1]
	assert.Equal(t, types.StatusFail, bad.Status)
	assert.Equal(t, "bad_test.cc", bad.RefFile)
	assert.Equal(t, int32(12), bad.RefLine)
	assert.Equal(t, "Failure", bad.Message)
	assert.Equal(t, int32(4), bad.LogLineStart)
	assert.Equal(t, int32(6), bad.LogLineEnd)
}

func TestRSpecFailureSectionAndSummary(t *testing.T) {
	content := `Failures:

  1) Widget does something
     Failure/Error: expect(x).to eq(2)
     # ./spec/widget_spec.rb:9

2 examples, 1 failure`

	require.True(t, RSpecText{}.CanParse(content))
	events, err := RSpecText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	fail := events[0]
	assert.Equal(t, types.StatusFail, fail.Status)
	assert.Equal(t, "Widget does something", fail.TestName)
	assert.Equal(t, "./spec/widget_spec.rb", fail.RefFile)
	assert.Equal(t, int32(9), fail.RefLine)
	assert.Equal(t, int32(3), fail.LogLineStart)
	assert.Equal(t, int32(5), fail.LogLineEnd)

	assert.Equal(t, types.EventTypeSummary, events[1].EventType)
	assert.Equal(t, types.StatusError, events[1].Status)
}

func TestMochaSpecReporter(t *testing.T) {
	content := "  ✓ renders\n" +
		"  1 passing (12ms)\n" +
		"  1 failing\n" +
		"\n" +
		"  1) Widget fails hard:\n" +
		"     AssertionError: expected 1 to equal 2\n" +
		"      at Context.<anonymous> (test/widget.js:9:15)"

	require.True(t, MochaChaiText{}.CanParse(content))
	events, err := MochaChaiText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "renders", events[0].TestName)

	fail := events[1]
	assert.Equal(t, types.StatusFail, fail.Status)
	assert.Equal(t, "test/widget.js", fail.RefFile)
	assert.Equal(t, int32(9), fail.RefLine)
	assert.Equal(t, int32(15), fail.RefColumn)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
}

func TestJUnitTextSurefireCases(t *testing.T) {
	content := "Running com.example.CalcTest\n" +
		"testAdd(com.example.CalcTest)  Time elapsed: 0.01 sec\n" +
		"testDiv(com.example.CalcTest)  Time elapsed: 0.02 sec  <<< FAILURE!\n" +
		"java.lang.AssertionError: expected:<1> but was:<2>\n" +
		"\tat com.example.CalcTest.testDiv(CalcTest.java:42)\n" +
		"\n" +
		"Tests run: 2, Failures: 1, Errors: 0, Skipped: 0"

	require.True(t, JUnitText{}.CanParse(content))
	events, err := JUnitText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "com.example.CalcTest::testAdd", events[0].FunctionName)
	assert.InDelta(t, 10.0, events[0].ExecutionTime, 1e-9)

	fail := events[1]
	assert.Equal(t, types.StatusFail, fail.Status)
	assert.Equal(t, "CalcTest.java", fail.RefFile)
	assert.Equal(t, int32(42), fail.RefLine)
	assert.Equal(t, int32(3), fail.LogLineStart)
	assert.Equal(t, int32(6), fail.LogLineEnd)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
}

func bridgeContext() *parser.Context {
	return &parser.Context{XMLToJSON: xmlbridge.XMLToJSON}
}

func TestJUnitXMLSuiteThroughBridge(t *testing.T) {
	content := `<testsuite name="S"><testcase name="t" classname="C" time="0.5"/><testcase name="u" classname="C"><failure message="bad">trace</failure></testcase></testsuite>`

	require.True(t, JUnitXML{}.CanParse(content))
	events, err := JUnitXML{}.ParseWithContext(bridgeContext(), content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "S::t", events[0].FunctionName)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.InDelta(t, 500.0, events[0].ExecutionTime, 1e-9)

	assert.Equal(t, "S::u", events[1].FunctionName)
	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "bad", events[1].Message)
	assert.Equal(t, "trace", events[1].LogContent)
}

func TestJUnitXMLTestsuitesWrapper(t *testing.T) {
	content := `<testsuites><testsuite name="A"><testcase name="x" time="0.1"/></testsuite><testsuite name="B"><testcase name="y"><skipped/></testcase></testsuite></testsuites>`

	events, err := JUnitXML{}.ParseWithContext(bridgeContext(), content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "A::x", events[0].FunctionName)
	assert.Equal(t, types.StatusSkip, events[1].Status)
}

func TestJUnitXMLWithoutBridgeDegradesToSummary(t *testing.T) {
	content := `<testsuite name="S"><testcase name="t"/></testsuite>`

	_, err := JUnitXML{}.ParseWithContext(nil, content)
	require.Error(t, err)

	events, err := JUnitXML{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeSummary, events[0].EventType)
	assert.Equal(t, types.StatusError, events[0].Status)
	assert.Contains(t, events[0].Message, "xml-to-json facility")
}

func TestNUnitTestRun(t *testing.T) {
	content := `<test-run><test-suite fullname="Tests.Calc">` +
		`<test-case name="Add" fullname="Tests.Calc.Add" result="Passed" duration="0.05"/>` +
		`<test-case name="Div" result="Failed"><failure><message>div by zero</message><stack-trace>at Calc.Div()</stack-trace></failure></test-case>` +
		`</test-suite></test-run>`

	require.True(t, NUnitXUnit{}.CanParse(content))
	events, err := NUnitXUnit{}.ParseWithContext(bridgeContext(), content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "nunit", events[0].ToolName)
	assert.Equal(t, "Tests.Calc.Add", events[0].FunctionName)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.InDelta(t, 50.0, events[0].ExecutionTime, 1e-9)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "Tests.Calc::Div", events[1].FunctionName)
	assert.Equal(t, "div by zero", events[1].Message)
	assert.Equal(t, "at Calc.Div()", events[1].LogContent)
}

func TestXUnitAssemblies(t *testing.T) {
	content := `<assemblies><assembly name="a.dll"><collection name="Coll">` +
		`<test name="T1" method="M1" result="Pass" time="0.1"/>` +
		`<test name="T2" method="M2" result="Fail"><failure><message>boom</message></failure></test>` +
		`</collection></assembly></assemblies>`

	require.True(t, NUnitXUnit{}.CanParse(content))
	events, err := NUnitXUnit{}.ParseWithContext(bridgeContext(), content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "xunit", events[0].ToolName)
	assert.Equal(t, "Coll::M1", events[0].FunctionName)
	assert.Equal(t, types.StatusPass, events[0].Status)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "boom", events[1].Message)
}

func TestTestFrameworksNoRecordsYieldSummary(t *testing.T) {
	for name, p := range map[string]parser.Parser{
		"pytest_text": PytestText{},
		"gotest_text": GoTestText{},
		"gtest_text":  GTestText{},
		"rspec_text":  RSpecText{},
	} {
		events, err := p.Parse("nothing here resembles this format")
		require.NoError(t, err, name)
		require.Len(t, events, 1, name)
		assert.Equal(t, types.EventTypeSummary, events[0].EventType, name)
	}
}
