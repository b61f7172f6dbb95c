package logging

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// LogrusText decodes logrus's default TextFormatter output:
// `time="2024-01-02T15:04:05Z" level=info msg="started" component=api`,
// a space-separated run of key="quoted value"|key=bareword pairs.
type LogrusText struct{}

var (
	logrusLineRe = regexp.MustCompile(`^time="([^"]*)"\s+level=(\w+)\s+msg="((?:[^"\\]|\\.)*)"`)
	logrusKVRe   = regexp.MustCompile(`(\w+)=(?:"((?:[^"\\]|\\.)*)"|(\S+))`)
)

func NewLogrusText() parser.Parser { return LogrusText{} }

func (LogrusText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.LogrusText,
		DisplayName: "logrus (text)",
		Priority:    45,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupGo},
		Aliases:     []string{"logrus"},
	}
}

func (LogrusText) CanParse(content string) bool {
	return logrusLineRe.MatchString(firstMatchLine(content, logrusLineRe))
}

func (LogrusText) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		m := logrusLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("logrus", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.StartedAt = m[1]
		ev.Message = strings.ReplaceAll(m[3], `\"`, `"`)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = types.ParseSeverityLevel(m[2]).String()

		for _, kv := range logrusKVRe.FindAllStringSubmatch(line, -1) {
			val := kv[2]
			if val == "" {
				val = kv[3]
			}
			switch kv[1] {
			case "component", "logger":
				ev.FunctionName = val
			case "user":
				ev.Principal = val
			case "source_ip", "remote_addr":
				ev.Origin = val
			case "target", "url":
				ev.Target = val
			}
		}

		switch strings.ToLower(m[2]) {
		case "error", "fatal", "panic":
			ev.Status = types.StatusError
		default:
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("logrus", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
