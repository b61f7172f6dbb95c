package buildsystems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/pkg/types"
)

func TestBazelResultLine(t *testing.T) {
	content := "PASSED: //a/b:test (1.25s)\n"
	require.True(t, Bazel{}.CanParse(content))
	events, err := Bazel{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, types.EventTypeTestResult, ev.EventType)
	assert.Equal(t, "bazel", ev.ToolName)
	assert.Equal(t, "//a/b:test", ev.TestName)
	assert.Equal(t, "test_result", ev.Category)
	assert.Equal(t, types.StatusPass, ev.Status)
	assert.InDelta(t, 1.25, ev.ExecutionTime, 1e-9)
}

func TestBazelStatusMapping(t *testing.T) {
	content := `PASSED: //a:ok (0.10s)
FAILED: //a:bad (2.00s)
TIMEOUT: //a:slow (300.00s)
FLAKY: //a:flaky (1.00s)`

	events, err := Bazel{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, types.StatusError, events[2].Status)
	assert.Equal(t, types.StatusPass, events[3].Status)
	assert.Equal(t, "warning", events[3].Severity)
}

func TestCMakeCTestResultAndConfigureError(t *testing.T) {
	content := `    Test #1: math_test ........   Passed    0.01 sec
CMake Error at CMakeLists.txt:42 (add_subdirectory):
  The source directory does not exist.`

	require.True(t, CMake{}.CanParse(content))
	events, err := CMake{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	ctest := events[0]
	assert.Equal(t, types.EventTypeTestResult, ctest.EventType)
	assert.Equal(t, "math_test", ctest.TestName)
	assert.Equal(t, types.StatusPass, ctest.Status)
	assert.InDelta(t, 10.0, ctest.ExecutionTime, 1e-9)

	cfg := events[1]
	assert.Equal(t, types.EventTypeBuildError, cfg.EventType)
	assert.Equal(t, "CMakeLists.txt", cfg.RefFile)
	assert.Equal(t, int32(42), cfg.RefLine)
	assert.Equal(t, "add_subdirectory", cfg.FunctionName)
	assert.Equal(t, types.StatusError, cfg.Status)
	assert.Equal(t, int32(2), cfg.LogLineStart)
	assert.Equal(t, int32(3), cfg.LogLineEnd)
}

func TestGradleTestResultsAndBanner(t *testing.T) {
	content := `> Task :app:test
com.example.CalcTest > testAdd PASSED
com.example.CalcTest > testDiv FAILED
    java.lang.ArithmeticException: / by zero
        at com.example.CalcTest.testDiv(CalcTest.java:42)
BUILD FAILED in 3s`

	require.True(t, Gradle{}.CanParse(content))
	events, err := Gradle{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "com.example.CalcTest::testAdd", events[0].FunctionName)

	fail := events[1]
	assert.Equal(t, types.StatusFail, fail.Status)
	assert.Equal(t, "CalcTest.java", fail.RefFile)
	assert.Equal(t, int32(42), fail.RefLine)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
}

func TestMavenSurefireSummaries(t *testing.T) {
	content := `Running com.example.CalcTest
Tests run: 3, Failures: 1, Errors: 0, Skipped: 0
BUILD FAILURE`

	require.True(t, Maven{}.CanParse(content))
	events, err := Maven{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	perClass := events[0]
	assert.Equal(t, "com.example.CalcTest", perClass.TestName)
	assert.Equal(t, types.StatusFail, perClass.Status)

	assert.Equal(t, types.StatusError, events[1].Status)
	assert.Equal(t, "BUILD FAILURE", events[1].Message)
}

func TestCargoBuildDiagnosticBlock(t *testing.T) {
	content := "error[E0382]: borrow of moved value: `x`\n" +
		" --> src/main.rs:12:5"

	require.True(t, CargoBuild{}.CanParse(content))
	events, err := CargoBuild{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, types.EventTypeBuildError, ev.EventType)
	assert.Equal(t, "E0382", ev.ErrorCode)
	assert.Equal(t, "src/main.rs", ev.RefFile)
	assert.Equal(t, int32(12), ev.RefLine)
	assert.Equal(t, int32(5), ev.RefColumn)
	assert.Equal(t, types.StatusError, ev.Status)
	assert.Equal(t, int32(1), ev.LogLineStart)
	assert.Equal(t, int32(2), ev.LogLineEnd)
}

func TestCargoBuildWarningSeverity(t *testing.T) {
	content := "warning: unused variable: `y`\n --> src/lib.rs:3:9"
	events, err := CargoBuild{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "warning", events[0].Severity)
	assert.Equal(t, types.StatusFail, events[0].Status)
}

func TestCargoTestLibtestOutput(t *testing.T) {
	content := `test math::add ... ok
test math::div ... FAILED
test math::slow ... ignored

---- math::div stdout ----
thread 'math::div' panicked at 'attempt to divide by zero', src/lib.rs:7:5

test result: FAILED. 1 passed; 1 failed; 0 ignored; 0 measured; 0 filtered out`

	require.True(t, CargoTest{}.CanParse(content))
	events, err := CargoTest{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Contains(t, events[1].LogContent, "panicked at")
	assert.Equal(t, types.StatusSkip, events[2].Status)

	assert.Equal(t, types.EventTypeSummary, events[3].EventType)
	assert.Equal(t, types.StatusError, events[3].Status)
}

func TestMSBuildDiagnosticLine(t *testing.T) {
	content := `Program.cs(12,8): error CS1002: ; expected [App.csproj]
Helper.cs(3,1): warning CS0168: variable declared but never used
Build FAILED.`

	require.True(t, MSBuild{}.CanParse(content))
	events, err := MSBuild{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	ev := events[0]
	assert.Equal(t, "Program.cs", ev.RefFile)
	assert.Equal(t, int32(12), ev.RefLine)
	assert.Equal(t, int32(8), ev.RefColumn)
	assert.Equal(t, "CS1002", ev.ErrorCode)
	assert.Equal(t, "; expected", ev.Message)
	assert.Equal(t, types.StatusError, ev.Status)

	assert.Equal(t, "warning", events[1].Severity)
	assert.Equal(t, types.StatusFail, events[1].Status)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
}

func TestNodeBuildNpmAndWebpackErrors(t *testing.T) {
	content := `ERROR in ./src/app.js
Module not found: Error: Can't resolve './missing'

npm ERR! code ELIFECYCLE
npm ERR! errno 1`

	require.True(t, NodeBuild{}.CanParse(content))
	events, err := NodeBuild{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	webpack := events[0]
	assert.Equal(t, "./src/app.js", webpack.RefFile)
	assert.Equal(t, int32(1), webpack.LogLineStart)
	assert.Equal(t, int32(2), webpack.LogLineEnd)
	assert.Contains(t, webpack.Message, "Module not found")

	assert.Equal(t, "code ELIFECYCLE", events[1].Message)
	assert.Equal(t, "errno 1", events[2].Message)
}

func TestBuildSystemsNoRecordsYieldSummary(t *testing.T) {
	events, err := Bazel{}.Parse("nothing matching at all")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeSummary, events[0].EventType)
}
