package logging

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// RubyLogger decodes Ruby's stdlib Logger default format:
// `I, [2024-01-02T15:04:05.000000 #1234]  INFO -- main: message`.
type RubyLogger struct{}

var rubyLoggerRe = regexp.MustCompile(`^([DIWEFA]), \[([^\s\]]+)\s+#(\d+)\]\s+(DEBUG|INFO|WARN|ERROR|FATAL|ANY)\s+--\s+([^:]*):\s*(.*)$`)

func NewRubyLogger() parser.Parser { return RubyLogger{} }

func (RubyLogger) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.RubyLogger,
		DisplayName: "Ruby Logger",
		Priority:    39,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupRuby},
	}
}

func (RubyLogger) CanParse(content string) bool {
	return rubyLoggerRe.MatchString(firstMatchLine(content, rubyLoggerRe))
}

func (RubyLogger) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		m := rubyLoggerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("ruby_logger", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.StartedAt = m[2]
		ev.FunctionName = strings.TrimSpace(m[5]) // progname
		ev.Message = strings.TrimSpace(m[6])
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = types.ParseSeverityLevel(m[4]).String()
		if m[4] == "ERROR" || m[4] == "FATAL" {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}
	return withSummaryFallback("ruby_logger", events), nil
}

// RailsLog decodes Rails request logs as a small state machine: a
// "Started VERB /path for ip at time" line opens a request, and the
// matching "Completed <code> ... in <ms>ms" line closes it, carrying the
// HTTP status and server-side duration. The controller line in between
// supplies the handling action. An unclosed request still emits.
type RailsLog struct{}

var (
	railsStartedRe    = regexp.MustCompile(`^Started\s+([A-Z]+)\s+"([^"]*)"\s+for\s+(\S+)\s+at\s+(.*)$`)
	railsProcessingRe = regexp.MustCompile(`^Processing by (\S+#\S+)`)
	railsCompletedRe  = regexp.MustCompile(`^Completed\s+(\d{3})\s+.*?\bin\s+(\d+(?:\.\d+)?)ms`)
)

func NewRailsLog() parser.Parser { return RailsLog{} }

func (RailsLog) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.RailsLog,
		DisplayName: "Rails request log",
		Priority:    47,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupRuby},
		Aliases:     []string{"rails"},
	}
}

func (RailsLog) CanParse(content string) bool {
	return railsStartedRe.MatchString(firstMatchLine(content, railsStartedRe))
}

func (RailsLog) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	var open *types.ValidationEvent

	flush := func() {
		if open != nil {
			events = append(events, *open)
			open = nil
		}
	}

	for i, raw := range textutil.Lines(content) {
		line := strings.TrimSpace(raw)

		if m := railsStartedRe.FindStringSubmatch(line); m != nil {
			flush()
			ev := types.NewEvent("rails", types.EventTypeDebugEvent)
			ev.Category = "http_request"
			ev.FunctionName = m[1]
			ev.Target = m[2]
			ev.Origin = m[3]
			ev.StartedAt = strings.TrimSpace(m[4])
			ev.Message = m[1] + " " + m[2]
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			ev.Status = types.StatusPass
			ev.Severity = "info"
			open = &ev
			continue
		}

		if open == nil {
			continue
		}

		if m := railsProcessingRe.FindStringSubmatch(line); m != nil {
			open.Unit = m[1]
			open.LogLineEnd = int32(i + 1)
			continue
		}

		if m := railsCompletedRe.FindStringSubmatch(line); m != nil {
			code := textutil.AtoiOr(m[1], 0)
			switch {
			case code >= 500:
				open.Status = types.StatusError
				open.Severity = "error"
				open.ErrorCode = m[1]
			case code >= 400:
				open.Status = types.StatusFail
				open.Severity = "warning"
				open.ErrorCode = m[1]
			}
			open.Message = open.Message + " -> " + m[1]
			open.ExecutionTime = textutil.ParseFloatOr(m[2], 0)
			open.HasExecutionTime = true
			open.LogLineEnd = int32(i + 1)
			flush()
		}
	}
	flush()

	return withSummaryFallback("rails", events), nil
}
