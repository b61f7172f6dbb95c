package logging

import (
	"encoding/json"
	"strings"
	"time"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// The three mainstream Node structured loggers share a JSONL wire shape
// but differ in how they spell level and time: Winston writes a string
// level plus "timestamp", Pino a numeric level plus epoch-millis "time",
// Bunyan a numeric level plus a schema-version "v" field. Each gets its
// own decoder so explicit `format=` selection and the tool_name column
// stay faithful; the generic JSONAppLog decoder remains the fallback for
// everything else in this family.

// pinoLevelNames maps Pino/Bunyan numeric levels to their severity names.
var pinoLevelNames = map[int]string{
	10: "debug", // trace
	20: "debug",
	30: "info",
	40: "warning",
	50: "error",
	60: "critical", // fatal
}

// Winston decodes winston's default JSON transport output:
// `{"level":"info","message":"...","timestamp":"..."}`.
type Winston struct{}

type winstonRecord struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Stack     string `json:"stack"`
}

func NewWinston() parser.Parser { return Winston{} }

func (Winston) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Winston,
		DisplayName: "Winston (JSON)",
		Priority:    38,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupJavaScript},
		Aliases:     []string{"winston_json"},
	}
}

func (Winston) CanParse(content string) bool {
	probe, ok := probeJSONLine(content)
	if !ok {
		return false
	}
	_, hasLevel := probe["level"]
	_, hasMessage := probe["message"]
	_, hasTimestamp := probe["timestamp"]
	if !hasLevel || !hasMessage || !hasTimestamp {
		return false
	}
	var level string
	return json.Unmarshal(probe["level"], &level) == nil
}

func (Winston) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec winstonRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.Message == "" {
			continue
		}
		ev := types.NewEvent("winston", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.Message = rec.Message
		ev.StartedAt = rec.Timestamp
		ev.FunctionName = rec.Service
		ev.LogContent = rec.Stack
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = types.ParseSeverityLevel(rec.Level).String()
		if ev.Severity == "error" || ev.Severity == "critical" {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}
	return withSummaryFallback("winston", events), nil
}

// Pino decodes pino's JSONL output: numeric level, epoch-millis time,
// pid/hostname, "msg".
type Pino struct{}

type pinoRecord struct {
	Level    int             `json:"level"`
	Time     json.RawMessage `json:"time"`
	PID      int             `json:"pid"`
	Hostname string          `json:"hostname"`
	Msg      string          `json:"msg"`
}

func NewPino() parser.Parser { return Pino{} }

func (Pino) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Pino,
		DisplayName: "Pino (JSON)",
		Priority:    36,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupJavaScript},
		Aliases:     []string{"pino_json"},
	}
}

func (Pino) CanParse(content string) bool {
	probe, ok := probeJSONLine(content)
	if !ok {
		return false
	}
	if _, isBunyan := probe["v"]; isBunyan {
		return false
	}
	_, hasMsg := probe["msg"]
	if !hasMsg {
		return false
	}
	var level int
	return json.Unmarshal(probe["level"], &level) == nil
}

func (Pino) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec pinoRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.Level == 0 {
			continue
		}
		ev := types.NewEvent("pino", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.Message = rec.Msg
		ev.Origin = rec.Hostname
		ev.StartedAt = pinoTime(rec.Time)
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = numericLevelSeverity(rec.Level)
		if rec.Level >= 50 {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}
	return withSummaryFallback("pino", events), nil
}

// Bunyan decodes bunyan's JSONL output: the "v" schema-version field,
// numeric level, logger "name", ISO "time".
type Bunyan struct{}

type bunyanRecord struct {
	V        *int   `json:"v"`
	Level    int    `json:"level"`
	Name     string `json:"name"`
	Hostname string `json:"hostname"`
	Time     string `json:"time"`
	Msg      string `json:"msg"`
}

func NewBunyan() parser.Parser { return Bunyan{} }

func (Bunyan) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Bunyan,
		DisplayName: "Bunyan (JSON)",
		Priority:    37,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupJavaScript},
		Aliases:     []string{"bunyan_json"},
	}
}

func (Bunyan) CanParse(content string) bool {
	probe, ok := probeJSONLine(content)
	if !ok {
		return false
	}
	_, hasV := probe["v"]
	_, hasMsg := probe["msg"]
	_, hasName := probe["name"]
	return hasV && hasMsg && hasName
}

func (Bunyan) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec bunyanRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.V == nil {
			continue
		}
		ev := types.NewEvent("bunyan", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.Message = rec.Msg
		ev.FunctionName = rec.Name
		ev.Origin = rec.Hostname
		ev.StartedAt = rec.Time
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = numericLevelSeverity(rec.Level)
		if rec.Level >= 50 {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}
	return withSummaryFallback("bunyan", events), nil
}

// probeJSONLine unmarshals the first non-blank line into a key probe,
// the shared CanParse preamble for the JSONL decoders in this package.
func probeJSONLine(content string) (map[string]json.RawMessage, bool) {
	line := strings.TrimSpace(firstNonBlankLine(content))
	if !strings.HasPrefix(line, "{") {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &probe); err != nil {
		return nil, false
	}
	return probe, true
}

func numericLevelSeverity(level int) string {
	if s, ok := pinoLevelNames[level]; ok {
		return s
	}
	if level >= 50 {
		return "error"
	}
	return "info"
}

// pinoTime renders pino's epoch-millis (or pre-formatted string) time
// field as an ISO-8601 timestamp.
func pinoTime(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(millis).UTC().Format(time.RFC3339Nano)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func withSummaryFallback(tool string, events []types.ValidationEvent) []types.ValidationEvent {
	if len(events) > 0 {
		return events
	}
	ev := types.NewEvent(tool, types.EventTypeSummary)
	ev.Category = "summary"
	ev.Status = types.StatusPass
	ev.Severity = "info"
	ev.Message = "no records found"
	return []types.ValidationEvent{ev}
}
