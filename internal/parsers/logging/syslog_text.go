// Package logging decodes structured and semi-structured application and
// system logs: syslog (RFC 3164-style), generic JSON app logs, the
// framework-specific text layouts (log4j, logrus, Python logging,
// Serilog, NLog, Ruby Logger, Rails), the Node JSONL loggers (Winston,
// Pino, Bunyan), and the cloud audit-log exports (CloudTrail, GCP Cloud
// Logging, Azure Activity).
package logging

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// SyslogText decodes RFC 3164-style syslog lines:
// "Jan  2 15:04:05 host process[pid]: message".
type SyslogText struct{}

var syslogLineRe = regexp.MustCompile(`^(\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})\s+(\S+)\s+([\w./-]+?)(?:\[(\d+)\])?:\s*(.*)$`)

var syslogLevelHints = map[string]string{
	"emerg": "error", "alert": "error", "crit": "error", "err": "error",
	"warning": "warning", "warn": "warning",
	"notice": "info", "info": "info", "debug": "info",
}

func NewSyslogText() parser.Parser { return SyslogText{} }

func (SyslogText) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.SyslogText,
		DisplayName: "syslog",
		Priority:    40,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"syslog"},
	}
}

func (SyslogText) CanParse(content string) bool {
	return syslogLineRe.MatchString(firstMatchLine(content, syslogLineRe))
}

func (SyslogText) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		m := syslogLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("syslog", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.StartedAt = m[1]
		ev.Origin = m[2]
		ev.Principal = m[3]
		ev.Message = strings.TrimSpace(m[5])
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)

		severity := "info"
		lower := strings.ToLower(m[5])
		for kw, sev := range syslogLevelHints {
			if strings.Contains(lower, kw) {
				severity = sev
				break
			}
		}
		ev.Severity = severity
		if severity == "error" {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("syslog", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func firstMatchLine(content string, re *regexp.Regexp) string {
	for _, line := range textutil.Lines(content) {
		if re.MatchString(line) {
			return line
		}
	}
	return ""
}
