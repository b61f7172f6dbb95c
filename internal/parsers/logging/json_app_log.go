package logging

import (
	"encoding/json"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// JSONAppLog decodes one-JSON-object-per-line application logs, the
// shape produced by zap/zerolog/Winston/Bunyan/Pino and most structured
// loggers: a "level"/"msg" (or "message") pair plus a free-form set of
// extra fields, with no further schema assumed.
type JSONAppLog struct{}

type jsonLogRecord struct {
	Level     string                 `json:"level"`
	Msg       string                 `json:"msg"`
	Message   string                 `json:"message"`
	Time      string                 `json:"time"`
	Timestamp string                 `json:"timestamp"`
	Logger    string                 `json:"logger"`
	User      string                 `json:"user"`
	SourceIP  string                 `json:"source_ip"`
	Target    string                 `json:"target"`
	Extra     map[string]interface{} `json:"-"`
}

func NewJSONAppLog() parser.Parser { return JSONAppLog{} }

func (JSONAppLog) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.JSONAppLog,
		DisplayName: "JSON application log",
		Priority:    35,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"json-log"},
	}
}

func (JSONAppLog) CanParse(content string) bool {
	line := firstNonBlankLine(content)
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "{") {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(t), &probe); err != nil {
		return false
	}
	_, hasLevel := probe["level"]
	_, hasMsg := probe["msg"]
	_, hasMessage := probe["message"]
	return hasLevel && (hasMsg || hasMessage)
}

func (JSONAppLog) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec jsonLogRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		ev := types.NewEvent("json_app_log", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.Message = rec.Msg
		if ev.Message == "" {
			ev.Message = rec.Message
		}
		ev.StartedAt = rec.Time
		if ev.StartedAt == "" {
			ev.StartedAt = rec.Timestamp
		}
		ev.Principal = rec.User
		ev.Origin = rec.SourceIP
		ev.Target = rec.Target
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = types.ParseSeverityLevel(rec.Level).String()
		switch strings.ToLower(rec.Level) {
		case "error", "fatal", "panic", "critical":
			ev.Status = types.StatusError
		default:
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("json_app_log", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func firstNonBlankLine(content string) string {
	for _, l := range textutil.Lines(content) {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}
