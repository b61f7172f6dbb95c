// Package network decodes web-server and network-facing request logs:
// Apache httpd and Nginx access logs in the Common/Combined Log Format,
// plus Nginx's error-log line shape.
package network

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// combinedLineRe matches the Common Log Format and its Combined extension:
// `host ident authuser [timestamp] "METHOD /path HTTP/1.1" status bytes
// ["referer" "user-agent"]`.
var combinedLineRe = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s+\[([^\]]+)\]\s+"(\S+)\s+(\S+)[^"]*"\s+(\d{3})\s+(\S+)(?:\s+"([^"]*)"\s+"([^"]*)")?`)

// nginxErrorRe matches Nginx error-log lines:
// `2024/01/02 15:04:05 [error] 123#123: *45 message`.
var nginxErrorRe = regexp.MustCompile(`^(\d{4}/\d{2}/\d{2}\s+\d{2}:\d{2}:\d{2})\s+\[(\w+)\]\s+\d+#\d+:\s*(?:\*\d+\s*)?(.*)$`)

// ApacheAccess decodes Apache httpd access logs. One event per request
// line; the HTTP status code drives status/severity and is surfaced as
// error_code for 4xx/5xx responses.
type ApacheAccess struct{}

func NewApacheAccess() parser.Parser { return ApacheAccess{} }

func (ApacheAccess) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.ApacheAccess,
		DisplayName: "Apache access log",
		Priority:    46,
		Category:    parser.CategoryNetwork,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"apache"},
	}
}

func (ApacheAccess) CanParse(content string) bool {
	return combinedLineRe.MatchString(firstMatching(content, combinedLineRe))
}

func (ApacheAccess) Parse(content string) ([]types.ValidationEvent, error) {
	return parseAccessLines("apache", content)
}

// NginxAccess decodes Nginx logs: access lines in the same combined
// format Apache uses (Nginx's default access_log layout), plus the
// distinct error-log shape. Because combined access lines are
// indistinguishable between the two servers, auto-detection resolves
// them to Apache (higher priority); this decoder is reached by explicit
// format name or when Nginx error-log lines are present.
type NginxAccess struct{}

func NewNginxAccess() parser.Parser { return NginxAccess{} }

func (NginxAccess) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.NginxAccess,
		DisplayName: "Nginx access/error log",
		Priority:    45,
		Category:    parser.CategoryNetwork,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"nginx"},
	}
}

func (NginxAccess) CanParse(content string) bool {
	if nginxErrorRe.MatchString(firstMatching(content, nginxErrorRe)) {
		return true
	}
	return combinedLineRe.MatchString(firstMatching(content, combinedLineRe))
}

func (NginxAccess) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		m := nginxErrorRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent("nginx", types.EventTypeDebugEvent)
		ev.Category = "network"
		ev.StartedAt = m[1]
		ev.Message = strings.TrimSpace(m[3])
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		ev.Severity = types.ParseSeverityLevel(m[2]).String()
		if ev.Severity == "error" || ev.Severity == "critical" {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}
	if len(events) > 0 {
		return events, nil
	}
	return parseAccessLines("nginx", content)
}

// parseAccessLines turns combined-format request lines into events,
// shared by the Apache and Nginx decoders.
func parseAccessLines(tool string, content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		m := combinedLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ev := types.NewEvent(tool, types.EventTypeDebugEvent)
		ev.Category = "network"
		ev.Origin = m[1]
		if m[3] != "-" {
			ev.Principal = m[3]
		}
		ev.StartedAt = m[4]
		ev.FunctionName = m[5]
		ev.Target = m[6]
		ev.Message = m[5] + " " + m[6] + " " + m[7]
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)
		if m[10] != "" {
			ev.ActorType = m[10] // user agent
		}

		code := textutil.AtoiOr(m[7], 0)
		switch {
		case code >= 500:
			ev.Status = types.StatusError
			ev.Severity = "error"
			ev.ErrorCode = m[7]
		case code >= 400:
			ev.Status = types.StatusFail
			ev.Severity = "warning"
			ev.ErrorCode = m[7]
		default:
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent(tool, types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

func firstMatching(content string, re *regexp.Regexp) string {
	for _, line := range textutil.Lines(content) {
		if re.MatchString(line) {
			return line
		}
	}
	return ""
}
