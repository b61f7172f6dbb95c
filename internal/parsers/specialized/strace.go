// Package specialized decodes domain-specific transcript formats that
// don't fit the test/build/lint/log taxonomy: system call traces today.
package specialized

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Strace decodes `strace` transcript lines: one event per syscall,
// `name(args) = retval[ errno (description)] <elapsed>`, plus the
// distinct shapes for delivered signals ("--- SIGSEGV {...} ---") and
// process exit ("+++ exited with 0 +++").
type Strace struct{}

var (
	straceCallRe   = regexp.MustCompile(`^(\w+)\(([^)]*)\)\s*=\s*(-?\d+|0x[0-9a-f]+|\?)(?:\s+(E[A-Z]+)\s*\(([^)]*)\))?(?:\s*<([\d.]+)>)?`)
	straceSignalRe = regexp.MustCompile(`^---\s+(SIG\w+)\s*(\{.*\})?\s*---`)
	straceExitRe   = regexp.MustCompile(`^\+\+\+\s+exited with (\d+)\s+\+\+\+`)
)

var syscallCategory = map[string]string{
	"open": "file", "openat": "file", "read": "file", "write": "file",
	"close": "file", "stat": "file", "fstat": "file", "lstat": "file",
	"access": "file", "unlink": "file", "rename": "file", "mkdir": "file",
	"chmod": "file", "chown": "file",
	"socket": "network", "connect": "network", "bind": "network",
	"listen": "network", "accept": "network", "send": "network",
	"recv": "network", "sendto": "network", "recvfrom": "network",
	"fork": "process", "vfork": "process", "clone": "process",
	"execve": "process", "wait4": "process", "waitpid": "process",
	"exit": "process", "exit_group": "process", "kill": "process",
	"mmap": "memory", "munmap": "memory", "brk": "memory", "mprotect": "memory",
	"rt_sigaction": "signal", "sigaction": "signal", "rt_sigprocmask": "signal",
	"pipe": "ipc", "pipe2": "ipc", "shmget": "ipc", "msgget": "ipc", "semget": "ipc",
	"nanosleep": "time", "clock_gettime": "time", "gettimeofday": "time", "time": "time",
}

func NewStrace() parser.Parser { return Strace{} }

func (Strace) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Strace,
		DisplayName: "strace",
		Priority:    50,
		Category:    parser.CategorySpecialized,
		Groups:      []string{catalog.GroupCCpp},
		Aliases:     []string{"strace"},
	}
}

func (Strace) CanParse(content string) bool {
	return straceCallRe.MatchString(firstMatchLine(content, straceCallRe))
}

func (Strace) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}

		if m := straceSignalRe.FindStringSubmatch(t); m != nil {
			ev := types.NewEvent("strace", types.EventTypeCrashSignal)
			ev.Category = "signal"
			ev.FunctionName = m[1]
			ev.Message = strings.TrimSpace(m[0])
			ev.Status = types.StatusError
			ev.Severity = "error"
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			events = append(events, ev)
			continue
		}
		if m := straceExitRe.FindStringSubmatch(t); m != nil {
			ev := types.NewEvent("strace", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = strings.TrimSpace(m[0])
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if m[1] == "0" {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			} else {
				ev.Status = types.StatusFail
				ev.Severity = "error"
			}
			events = append(events, ev)
			continue
		}

		m := straceCallRe.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		ev := types.NewEvent("strace", types.EventTypeDebugEvent)
		syscall := m[1]
		ev.FunctionName = syscall
		if cat, ok := syscallCategory[syscall]; ok {
			ev.Category = cat
		} else {
			ev.Category = "syscall"
		}
		ev.Target = straceFirstArg(m[2])
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)

		if m[4] != "" {
			ev.Status = types.StatusFail
			ev.Severity = "error"
			ev.ErrorCode = m[4]
			ev.Message = strings.TrimSpace(m[5])
		} else {
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		if m[6] != "" {
			ev.ExecutionTime = textutil.ParseFloatOr(m[6], 0) * 1000
			ev.HasExecutionTime = true
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("strace", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

// straceFirstArg extracts the first argument of a syscall's argument
// list, unquoting it when it is a string literal, for use as target.
func straceFirstArg(args string) string {
	parts := strings.SplitN(args, ",", 2)
	if len(parts) == 0 {
		return ""
	}
	first := strings.TrimSpace(parts[0])
	return strings.Trim(first, `"`)
}

func firstMatchLine(content string, re *regexp.Regexp) string {
	for _, line := range textutil.Lines(content) {
		if re.MatchString(strings.TrimSpace(line)) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
