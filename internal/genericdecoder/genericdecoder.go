// Package genericdecoder implements the `regexp:PATTERN` format path:
// a user-supplied regular expression with named captures,
// applied line-by-line, whose capture names populate ValidationEvent
// fields of the same name.
package genericdecoder

import (
	"regexp"
	"strconv"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/scanerr"
	"devlogscan/pkg/types"
)

// fieldNames is the set of ValidationEvent fields a capture group may
// populate; any other capture name is matched but silently dropped.
var fieldNames = map[string]bool{
	"tool_name": true, "event_type": true, "ref_file": true, "ref_line": true,
	"ref_column": true, "function_name": true, "status": true, "severity": true,
	"category": true, "error_code": true, "message": true, "suggestion": true,
	"log_content": true, "test_name": true, "execution_time": true,
	"principal": true, "origin": true, "target": true, "actor_type": true,
	"started_at": true, "scope": true, "unit": true, "subunit": true,
}

// Compile parses pattern as a Go regexp, requiring at least one named
// capture group recognized in fieldNames; returns a PatternError
// otherwise, surfaced at bind time.
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, scanerr.Pattern("genericdecoder.compile", "invalid regexp: "+err.Error())
	}
	hasField := false
	for _, name := range re.SubexpNames() {
		if fieldNames[name] {
			hasField = true
			break
		}
	}
	if !hasField {
		return nil, scanerr.Pattern("genericdecoder.compile", "regexp has no recognized named capture group")
	}
	return re, nil
}

// Parse applies re to content line by line, producing one event per
// matching line. Matches are line-scoped; the pattern never spans lines.
func Parse(re *regexp.Regexp, content string) ([]types.ValidationEvent, error) {
	names := re.SubexpNames()
	var events []types.ValidationEvent

	for i, line := range textutil.Lines(content) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("regexp", types.EventTypeDebugEvent)
		ev.Category = "debug_event"
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Status = types.StatusPass
		ev.Severity = "info"

		for gi, name := range names {
			if name == "" || !fieldNames[name] || gi >= len(m) {
				continue
			}
			applyField(&ev, name, m[gi])
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("regexp", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func applyField(ev *types.ValidationEvent, name, value string) {
	switch name {
	case "tool_name":
		ev.ToolName = value
	case "event_type":
		ev.EventType = types.EventType(value)
	case "ref_file":
		ev.RefFile = value
	case "ref_line":
		ev.RefLine = textutil.AtoiOr32(value, -1)
	case "ref_column":
		ev.RefColumn = textutil.AtoiOr32(value, -1)
	case "function_name":
		ev.FunctionName = value
	case "status":
		ev.Status = types.EventStatus(value)
	case "severity":
		ev.Severity = value
	case "category":
		ev.Category = value
	case "error_code":
		ev.ErrorCode = value
	case "message":
		ev.Message = value
	case "suggestion":
		ev.Suggestion = value
	case "log_content":
		ev.LogContent = value
	case "test_name":
		ev.TestName = value
	case "execution_time":
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			ev.ExecutionTime = f
			ev.HasExecutionTime = true
		}
	case "principal":
		ev.Principal = value
	case "origin":
		ev.Origin = value
	case "target":
		ev.Target = value
	case "actor_type":
		ev.ActorType = value
	case "started_at":
		ev.StartedAt = value
	case "scope":
		ev.Scope = value
	case "unit":
		ev.Unit = value
	case "subunit":
		ev.Subunit = value
	}
}
