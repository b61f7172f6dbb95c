package logging

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Log4jText decodes the conventional log4j/Logback PatternLayout:
// "2024-01-02 15:04:05,000 [thread] LEVEL logger.Class - message",
// collecting any following indented stack-trace lines into the same
// event when the level is ERROR.
type Log4jText struct{}

var log4jLineRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[,.]\d+)\s+\[([^\]]*)\]\s+(TRACE|DEBUG|INFO|WARN|ERROR|FATAL)\s+(\S+)\s+-\s+(.*)$`)

func NewLog4jText() parser.Parser { return Log4jText{} }

func (Log4jText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Log4jText,
		DisplayName: "log4j/Logback",
		Priority:    42,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupJava},
		Aliases:     []string{"log4j", "logback"},
	}
}

func (Log4jText) CanParse(content string) bool {
	return log4jLineRe.MatchString(firstMatchLine(content, log4jLineRe))
}

func (Log4jText) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		m := log4jLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("log4j", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.StartedAt = m[1]
		ev.FunctionName = m[4]
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)

		if m[3] == "ERROR" || m[3] == "FATAL" {
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				return log4jLineRe.MatchString(l) || strings.TrimSpace(l) == ""
			})
			ev.Message = strings.TrimSpace(m[5])
			ev.LogContent = strings.TrimSpace(block.Text)
			ev.LogLineEnd = int32(block.LineEnd)
			ev.Status = types.StatusError
		} else {
			ev.Message = strings.TrimSpace(m[5])
			ev.Status = types.StatusPass
		}
		ev.Severity = log4jSeverity(m[3])
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("log4j", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func log4jSeverity(level string) string {
	switch level {
	case "FATAL", "ERROR":
		return "error"
	case "WARN":
		return "warning"
	default:
		return "info"
	}
}
