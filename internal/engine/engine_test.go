package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/internal/registry"
	"devlogscan/internal/xmlbridge"
	"devlogscan/pkg/types"
)

func newTestEngine() *Engine {
	log := logrus.New()
	log.SetOutput(discardWriter{})
	reg := registry.WithDefaults()
	return New(reg, log, BuildContext(xmlbridge.XMLToJSON))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func runInline(t *testing.T, content string, format string) []types.ValidationEvent {
	t.Helper()
	eng := newTestEngine()
	opts := types.DefaultScanOptions(content)
	opts.Inline = true
	if format != "" {
		opts.Format = format
	}
	scan, err := eng.Run(opts)
	require.NoError(t, err)

	var all []types.ValidationEvent
	for {
		rows := scan.Emitter.Pull(1024)
		if len(rows) == 0 {
			break
		}
		for _, r := range rows {
			ev := types.ValidationEvent{EventType: types.EventType(r.EventType)}
			if r.Status != nil {
				ev.Status = types.EventStatus(*r.Status)
			}
			if r.RefFile != nil {
				ev.RefFile = *r.RefFile
			}
			if r.RefLine != nil {
				ev.RefLine = *r.RefLine
			}
			if r.Message != nil {
				ev.Message = *r.Message
			}
			all = append(all, ev)
		}
	}
	return all
}

// TestScenarioPytestTextOneFailure: one passing test, one failing test
// with a FAILURES section entry, and a trailing summary bar.
func TestScenarioPytestTextOneFailure(t *testing.T) {
	content := "test_a.py::test_ok PASSED\n" +
		"test_a.py::test_bad FAILED\n" +
		"============= FAILURES =============\n" +
		"___ test_bad ___\n" +
		"test_a.py:7: AssertionError: expected 1 got 2\n" +
		"============= 1 passed, 1 failed in 0.12s =============\n"

	events := runInline(t, content, "auto")
	require.Len(t, events, 3)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "test_a.py", events[0].RefFile)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "test_a.py", events[1].RefFile)
	assert.Equal(t, int32(7), events[1].RefLine)
	assert.Equal(t, "AssertionError: expected 1 got 2", events[1].Message)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
	assert.Equal(t, "1 passed, 1 failed in 0.12s", events[2].Message)
}

// TestScenarioJUnitXML: a two-case suite decoded through the XML bridge.
func TestScenarioJUnitXML(t *testing.T) {
	content := `<testsuite name="S"><testcase name="t" classname="C" time="0.5"/><testcase name="u" classname="C"><failure message="bad">trace</failure></testcase></testsuite>`
	events := runInline(t, content, "junit_xml")
	require.Len(t, events, 2)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "bad", events[1].Message)
}

// TestScenarioBazel: a single PASSED target line.
func TestScenarioBazel(t *testing.T) {
	events := runInline(t, "PASSED: //a/b:test (1.25s)\n", "bazel")
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeTestResult, events[0].EventType)
}

// TestScenarioStrace: a failed open() syscall with errno and elapsed time.
func TestScenarioStrace(t *testing.T) {
	events := runInline(t, `open("/etc/passwd", O_RDONLY) = -1 ENOENT (No such file or directory) <0.000031>`+"\n", "strace")
	require.Len(t, events, 1)
	assert.Equal(t, types.StatusFail, events[0].Status)
}

func TestGroupDispatchFirstProductiveParserWins(t *testing.T) {
	eng := newTestEngine()
	opts := types.DefaultScanOptions("PASSED: //a/b:test (1.25s)\n")
	opts.Inline = true
	opts.Format = "ci"
	scan, err := eng.Run(opts)
	require.NoError(t, err)
	assert.Greater(t, scan.Emitter.Len(), 0)
}

func TestUnknownContentProducesSingleUnknownEvent(t *testing.T) {
	events := runInline(t, "completely unrecognizable gibberish\x00\x01", "auto")
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeUnknown, events[0].EventType)
}

// TestContextColumnFromInlineBuffer covers the context column wiring
// end to end: with context_lines set, the engine supplies the emitter
// the inline content's full line buffer, and each emitted row carries a
// clamped window of source lines with the event lines flagged.
func TestContextColumnFromInlineBuffer(t *testing.T) {
	eng := newTestEngine()
	opts := types.DefaultScanOptions("Jan  2 15:04:05 host1 sshd[1]: one\nJan  2 15:04:06 host1 sshd[1]: two\nJan  2 15:04:07 host1 sshd[1]: three\n")
	opts.Inline = true
	opts.Format = "syslog"
	opts.ContextLines = 1

	scan, err := eng.Run(opts)
	require.NoError(t, err)
	rows := scan.Emitter.Pull(10)
	require.NotEmpty(t, rows)

	ctx := rows[1].Context // event on line 2: window is lines 1..3
	require.Len(t, ctx, 3)
	assert.Equal(t, 1, ctx[0].LineNumber)
	assert.False(t, ctx[0].IsEvent)
	assert.True(t, ctx[1].IsEvent)
	assert.Contains(t, ctx[1].Content, "two")
}

// TestSourceFallsBackToInlineWhenNothingMatchesOnDisk:
// when source isn't a file, glob match, or directory, expansion fails with
// NotFound, and that failure is the signal to treat source itself as
// literal content, not a scan-aborting error. This exercises that
// fallback through Engine.Run without the caller setting opts.Inline.
func TestSourceFallsBackToInlineWhenNothingMatchesOnDisk(t *testing.T) {
	eng := newTestEngine()
	opts := types.DefaultScanOptions("PASSED: //a/b:test (1.25s)\n")
	opts.Format = "bazel"
	// opts.Inline left false deliberately: source is literal content
	// that happens not to exist as a path or match any glob.

	scan, err := eng.Run(opts)
	require.NoError(t, err)
	require.Equal(t, 1, scan.Emitter.Len())

	rows := scan.Emitter.Pull(10)
	require.Len(t, rows, 1)
	assert.Equal(t, string(types.EventTypeTestResult), rows[0].EventType)
}
