package debuggers

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// GDBLLDB decodes GDB and LLDB session transcripts. Signal deliveries
// ("Program received signal SIGSEGV" / LLDB's "stop reason =
// EXC_BAD_ACCESS") become crash_signal events carrying the signal name
// as error_code and the innermost resolvable frame as the referenced
// location; breakpoint hits become debug_info events.
type GDBLLDB struct{}

var (
	gdbSignalRe     = regexp.MustCompile(`^Program received signal (\w+),\s*(.*)$`)
	gdbFrameRe      = regexp.MustCompile(`^#(\d+)\s+(?:0x[0-9a-fA-F]+\s+in\s+)?(\S+)\s*\([^)]*\)\s+at\s+([^:]+):(\d+)`)
	gdbBreakpointRe = regexp.MustCompile(`^Breakpoint (\d+), (\S+)\s*\([^)]*\)\s+at\s+([^:]+):(\d+)`)
	lldbStopRe      = regexp.MustCompile(`^\* thread #\d+.*stop reason = (\S+)`)
	lldbFrameRe     = regexp.MustCompile(`frame #(\d+):\s+0x[0-9a-fA-F]+\s+\S+` + "`" + `(\S+?)(?:\(.*?\))?\s+at\s+([^:]+):(\d+)`)
	gdbExitRe       = regexp.MustCompile(`^\[Inferior \d+ \(process \d+\) exited (normally|with code (\d+))\]`)
)

func NewGDBLLDB() parser.Parser { return GDBLLDB{} }

func (GDBLLDB) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.GDBLLDB,
		DisplayName: "GDB/LLDB",
		Priority:    71,
		Category:    parser.CategoryDebugger,
		Groups:      []string{catalog.GroupCCpp},
		Aliases:     []string{"gdb", "lldb"},
	}
}

func (GDBLLDB) CanParse(content string) bool {
	switch {
	case strings.Contains(content, "GNU gdb"), strings.Contains(content, "(gdb)"),
		strings.Contains(content, "(lldb)"):
		return true
	case strings.Contains(content, "Program received signal"):
		return true
	case strings.Contains(content, "stop reason =") && strings.Contains(content, "thread #"):
		return true
	case strings.Contains(content, "Reading symbols from") && strings.Contains(content, "Starting program:"):
		return true
	}
	return false
}

func (GDBLLDB) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := gdbSignalRe.FindStringSubmatch(line); m != nil {
			events = append(events, crashEvent(lines, i, m[1], strings.TrimSpace(m[2]), gdbFrameRe))
			continue
		}

		if m := lldbStopRe.FindStringSubmatch(line); m != nil {
			reason := strings.TrimSuffix(m[1], ",")
			if reason == "breakpoint" {
				ev := types.NewEvent("gdb_lldb", types.EventTypeDebugInfo)
				ev.Category = "breakpoint"
				ev.Message = line
				ev.LogLineStart = int32(i + 1)
				ev.LogLineEnd = int32(i + 1)
				ev.Status = types.StatusInfo
				ev.Severity = "debug"
				events = append(events, ev)
				continue
			}
			events = append(events, crashEvent(lines, i, reason, line, lldbFrameRe))
			continue
		}

		if m := gdbBreakpointRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("gdb_lldb", types.EventTypeDebugInfo)
			ev.Category = "breakpoint"
			ev.Message = line
			ev.FunctionName = m[2]
			ev.RefFile = m[3]
			ev.RefLine = textutil.AtoiOr32(m[4], -1)
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			ev.Status = types.StatusInfo
			ev.Severity = "debug"
			events = append(events, ev)
			continue
		}

		if m := gdbExitRe.FindStringSubmatch(line); m != nil {
			ev := types.NewEvent("gdb_lldb", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = line
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[1] == "normally" {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			} else {
				ev.Status = types.StatusError
				ev.Severity = "error"
				ev.ErrorCode = m[2]
			}
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		ev := types.NewEvent("gdb_lldb", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

// crashEvent builds a crash_signal event from a signal/stop line, then
// scans forward for the innermost stack frame to attach the referenced
// location. The block spans the stop line through the last frame line.
func crashEvent(lines []string, start int, signal, detail string, frameRe *regexp.Regexp) types.ValidationEvent {
	ev := types.NewEvent("gdb_lldb", types.EventTypeCrashSignal)
	ev.Category = "crash_signal"
	ev.ErrorCode = signal
	ev.Message = detail
	if ev.Message == "" {
		ev.Message = signal
	}
	ev.Status = types.StatusError
	ev.Severity = "critical"
	ev.LogLineStart = int32(start + 1)
	ev.LogLineEnd = int32(start + 1)

	for j := start + 1; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		m := frameRe.FindStringSubmatch(line)
		if m == nil {
			// Frames follow immediately; the first non-frame, non-blank
			// line after at least one frame closes the block.
			if line == "" || ev.RefFile == "" && j-start <= 2 {
				continue
			}
			break
		}
		if ev.RefFile == "" {
			ev.FunctionName = m[2]
			ev.RefFile = m[3]
			ev.RefLine = textutil.AtoiOr32(m[4], -1)
		}
		ev.LogLineEnd = int32(j + 1)
	}
	return ev
}
