package logging

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// PythonLogging decodes the two line shapes Python's logging module
// produces out of the box: the common dash-separated formatter
// "2024-01-02 15:04:05,123 - logger - LEVEL - message" and
// basicConfig's default "LEVEL:logger:message". ERROR records absorb a
// following Traceback block into the same event.
type PythonLogging struct{}

var (
	pyLogDashRe  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[,.]\d+)?)\s+-\s+(\S+)\s+-\s+(DEBUG|INFO|WARNING|ERROR|CRITICAL)\s+-\s+(.*)$`)
	pyLogBasicRe = regexp.MustCompile(`^(DEBUG|INFO|WARNING|ERROR|CRITICAL):([\w.]+):(.*)$`)
	pyTraceRefRe = regexp.MustCompile(`File "([^"]+)", line (\d+), in (\S+)`)
)

func NewPythonLogging() parser.Parser { return PythonLogging{} }

func (PythonLogging) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.PythonLogging,
		DisplayName: "Python logging",
		Priority:    41,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupPython},
		Aliases:     []string{"python_log"},
	}
}

func (PythonLogging) CanParse(content string) bool {
	for _, line := range textutil.Lines(content) {
		if pyLogDashRe.MatchString(line) || pyLogBasicRe.MatchString(line) {
			return true
		}
	}
	return false
}

func (PythonLogging) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		var started, logger, level, msg string
		if m := pyLogDashRe.FindStringSubmatch(line); m != nil {
			started, logger, level, msg = m[1], m[2], m[3], m[4]
		} else if m := pyLogBasicRe.FindStringSubmatch(line); m != nil {
			level, logger, msg = m[1], m[2], m[3]
		} else {
			continue
		}

		ev := types.NewEvent("python_logging", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.StartedAt = started
		ev.FunctionName = logger
		ev.Message = strings.TrimSpace(msg)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = types.ParseSeverityLevel(level).String()

		if level == "ERROR" || level == "CRITICAL" {
			ev.Status = types.StatusError
			if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "Traceback") {
				block := textutil.CollectBlock(lines, i, func(l string) bool {
					return pyLogDashRe.MatchString(l) || pyLogBasicRe.MatchString(l)
				})
				ev.LogContent = strings.TrimSpace(block.Text)
				ev.LogLineEnd = int32(block.LineEnd)
				if ref := pyTraceRefRe.FindStringSubmatch(block.Text); ref != nil {
					ev.RefFile = ref[1]
					ev.RefLine = textutil.AtoiOr32(ref[2], -1)
					if ev.FunctionName == "" {
						ev.FunctionName = ref[3]
					}
				}
			}
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("python_logging", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
