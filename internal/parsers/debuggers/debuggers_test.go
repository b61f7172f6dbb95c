package debuggers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/pkg/types"
)

const memcheckSample = `==1234== Memcheck, a memory error detector
==1234== Invalid read of size 4
==1234==    at 0x4005F4: main (test.c:7)
==1234==
==1234== 10 bytes in 1 blocks are definitely lost in loss record 1 of 1
==1234==    at 0x4C2AB80: malloc (vg_replace_malloc.c:299)
==1234==    by 0x4005E6: main (test.c:5)
==1234==
==1234== ERROR SUMMARY: 2 errors from 2 contexts`

func TestValgrindMemcheckReportBlocks(t *testing.T) {
	require.True(t, Valgrind{}.CanParse(memcheckSample))
	events, err := Valgrind{}.Parse(memcheckSample)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, types.EventTypeMemoryError, events[0].EventType)
	assert.Equal(t, types.StatusFail, events[0].Status)
	assert.Equal(t, "main", events[0].FunctionName)
	assert.Equal(t, "test.c", events[0].RefFile)
	assert.Equal(t, int32(7), events[0].RefLine)
	assert.Equal(t, int32(2), events[0].LogLineStart)
	assert.Equal(t, int32(3), events[0].LogLineEnd)

	assert.Equal(t, types.EventTypeMemoryLeak, events[1].EventType)
	assert.Equal(t, "warning", events[1].Severity)
	assert.Equal(t, "malloc", events[1].FunctionName)

	assert.Equal(t, types.EventTypeSummary, events[2].EventType)
	assert.Equal(t, types.StatusError, events[2].Status)
}

func TestValgrindHelgrindRace(t *testing.T) {
	content := `==99== Helgrind, a thread error detector
==99== Possible data race during read of size 4 at 0x60104C by thread #2
==99==    at 0x4008F1: worker (race.c:14)`

	events, err := Valgrind{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeThreadError, events[0].EventType)
	assert.Equal(t, "race.c", events[0].RefFile)
}

func TestGDBSegfaultWithFrames(t *testing.T) {
	content := `Program received signal SIGSEGV, Segmentation fault.
#0  0x0000000000400546 in crash (ptr=0x0) at test.c:7
#1  0x0000000000400567 in main () at test.c:12`

	require.True(t, GDBLLDB{}.CanParse(content))
	events, err := GDBLLDB{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, types.EventTypeCrashSignal, ev.EventType)
	assert.Equal(t, "SIGSEGV", ev.ErrorCode)
	assert.Equal(t, "crash", ev.FunctionName)
	assert.Equal(t, "test.c", ev.RefFile)
	assert.Equal(t, int32(7), ev.RefLine)
	assert.Equal(t, int32(1), ev.LogLineStart)
	assert.Equal(t, int32(3), ev.LogLineEnd)
	assert.Equal(t, "critical", ev.Severity)
}

func TestGDBBreakpointAndExit(t *testing.T) {
	content := `Breakpoint 1, main () at test.c:5
[Inferior 1 (process 4242) exited normally]`

	events, err := GDBLLDB{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, types.EventTypeDebugInfo, events[0].EventType)
	assert.Equal(t, "main", events[0].FunctionName)
	assert.Equal(t, int32(5), events[0].RefLine)
	assert.Equal(t, types.EventTypeSummary, events[1].EventType)
	assert.Equal(t, types.StatusPass, events[1].Status)
}

func TestLLDBStopReason(t *testing.T) {
	content := "* thread #1, queue = 'com.apple.main-thread', stop reason = EXC_BAD_ACCESS (code=1, address=0x0)\n" +
		"    frame #0: 0x0000000100003f58 demo`crash at main.c:4"

	require.True(t, GDBLLDB{}.CanParse(content))
	events, err := GDBLLDB{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeCrashSignal, events[0].EventType)
	assert.Equal(t, "EXC_BAD_ACCESS", events[0].ErrorCode)
	assert.Equal(t, "main.c", events[0].RefFile)
	assert.Equal(t, int32(4), events[0].RefLine)
}

func TestDebuggersNoRecordsYieldSummary(t *testing.T) {
	for name, p := range map[string]interface {
		Parse(string) ([]types.ValidationEvent, error)
	}{"valgrind": Valgrind{}, "gdb_lldb": GDBLLDB{}} {
		events, err := p.Parse("plain text with none of the markers")
		require.NoError(t, err, name)
		require.Len(t, events, 1, name)
		assert.Equal(t, types.EventTypeSummary, events[0].EventType, name)
	}
}
