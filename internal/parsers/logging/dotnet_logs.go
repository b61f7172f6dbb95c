package logging

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Serilog decodes Serilog's default console/file output template:
// "2024-01-02 15:04:05.123 +00:00 [INF] message", with the three-letter
// level codes Serilog abbreviates to.
type Serilog struct{}

var serilogLineRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:\s+[+-]\d{2}:\d{2})?)\s+\[(VRB|DBG|INF|WRN|ERR|FTL)\]\s+(.*)$`)

var serilogLevels = map[string]string{
	"VRB": "debug", "DBG": "debug", "INF": "info",
	"WRN": "warning", "ERR": "error", "FTL": "critical",
}

func NewSerilog() parser.Parser { return Serilog{} }

func (Serilog) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Serilog,
		DisplayName: "Serilog",
		Priority:    43,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupDotNet},
		Aliases:     []string{"serilog_text", "serilog_json"},
	}
}

func (Serilog) CanParse(content string) bool {
	return serilogLineRe.MatchString(firstMatchLine(content, serilogLineRe))
}

func (Serilog) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i, line := range lines {
		m := serilogLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("serilog", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.StartedAt = m[1]
		ev.Message = strings.TrimSpace(m[3])
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = serilogLevels[m[2]]

		if m[2] == "ERR" || m[2] == "FTL" {
			ev.Status = types.StatusError
			// Exception renderings follow the message as indented or
			// "System.*Exception:"-prefixed lines until the next record.
			block := textutil.CollectBlock(lines, i, func(l string) bool {
				return serilogLineRe.MatchString(l) || strings.TrimSpace(l) == ""
			})
			if block.LineEnd > block.LineStart {
				ev.LogContent = strings.TrimSpace(block.Text)
				ev.LogLineEnd = int32(block.LineEnd)
			}
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}
	return withSummaryFallback("serilog", events), nil
}

// NLog decodes NLog's default layout, pipe-separated:
// "2025-01-15 10:30:45.1234|INFO|MyApp.Program|Application started",
// with an optional trailing exception segment. The logger name lands in
// category and the exception type in error_code.
type NLog struct{}

var (
	nlogLineRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}(?:\.\d+)?)\|(\w+)\|([^|]+)\|([^|]*)(?:\|(.*))?$`)
	nlogDetectRe = regexp.MustCompile(`(?i)^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}(?:\.\d+)?\|(TRACE|DEBUG|INFO|WARN|ERROR|FATAL)\|`)
)

func NewNLog() parser.Parser { return NLog{} }

func (NLog) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.NLog,
		DisplayName: "NLog",
		Priority:    44,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupDotNet},
		Aliases:     []string{"nlog_text"},
	}
}

func (NLog) CanParse(content string) bool {
	matched, checked := 0, 0
	for _, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 10 {
			break
		}
		if nlogDetectRe.MatchString(line) {
			matched++
		}
	}
	return matched > 0 && matched >= checked/3
}

func (NLog) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		m := nlogLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ev := types.NewEvent("nlog", types.EventTypeDebugInfo)
		ev.StartedAt = m[1]
		ev.Category = strings.TrimSpace(m[3])
		ev.Message = m[4]
		ev.LogContent = line
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)

		ev.Severity = nlogSeverity(m[2])
		switch ev.Severity {
		case "error":
			ev.Status = types.StatusError
		case "warning":
			ev.Status = types.StatusWarning
		default:
			ev.Status = types.StatusInfo
		}
		if m[5] != "" {
			ev.ErrorCode = m[5]
		}
		events = append(events, ev)
	}
	return withSummaryFallback("nlog", events), nil
}

func nlogSeverity(level string) string {
	switch strings.ToUpper(level) {
	case "FATAL", "ERROR":
		return "error"
	case "WARN":
		return "warning"
	default:
		return "info"
	}
}
