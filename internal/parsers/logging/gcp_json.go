package logging

import (
	"encoding/json"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// GCPCloudLogging decodes Google Cloud Logging JSONL export entries:
// one LogEntry object per line with a `severity`, a `logName`, and one
// of textPayload / jsonPayload / protoPayload. Audit-log protoPayload
// entries surface the calling principal and method.
type GCPCloudLogging struct{}

type gcpEntry struct {
	Timestamp   string          `json:"timestamp"`
	Severity    string          `json:"severity"`
	LogName     string          `json:"logName"`
	InsertID    string          `json:"insertId"`
	TextPayload string          `json:"textPayload"`
	JSONPayload json.RawMessage `json:"jsonPayload"`
	Proto       gcpProtoPayload `json:"protoPayload"`
	Resource    gcpResource     `json:"resource"`
}

type gcpProtoPayload struct {
	MethodName string `json:"methodName"`
	AuthInfo   struct {
		PrincipalEmail string `json:"principalEmail"`
	} `json:"authenticationInfo"`
	RequestMetadata struct {
		CallerIP string `json:"callerIp"`
	} `json:"requestMetadata"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

type gcpResource struct {
	Type string `json:"type"`
}

func NewGCPCloudLogging() parser.Parser { return GCPCloudLogging{} }

func (GCPCloudLogging) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.GCPCloudLogging,
		DisplayName: "GCP Cloud Logging",
		Priority:    49,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"gcp_logging"},
	}
}

func (GCPCloudLogging) CanParse(content string) bool {
	line := strings.TrimSpace(firstNonBlankLine(content))
	if !strings.HasPrefix(line, "{") {
		return false
	}
	return strings.Contains(line, `"logName"`) ||
		(strings.Contains(line, `"severity"`) && strings.Contains(line, `"protoPayload"`))
}

func (GCPCloudLogging) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for i, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec gcpEntry
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		if rec.LogName == "" && rec.Severity == "" {
			continue
		}

		ev := types.NewEvent("gcp_cloud_logging", types.EventTypeDebugEvent)
		ev.Category = "cloud_log"
		ev.StartedAt = rec.Timestamp
		ev.ExternalID = rec.InsertID
		ev.Target = rec.LogName
		ev.ActorType = rec.Resource.Type
		ev.FunctionName = rec.Proto.MethodName
		ev.Principal = rec.Proto.AuthInfo.PrincipalEmail
		ev.Origin = rec.Proto.RequestMetadata.CallerIP
		ev.LogLineStart = int32(i + 1)
		ev.LogLineEnd = int32(i + 1)

		switch rec.Severity {
		case "EMERGENCY", "ALERT", "CRITICAL":
			ev.Severity = "critical"
		case "ERROR":
			ev.Severity = "error"
		case "WARNING":
			ev.Severity = "warning"
		case "DEBUG":
			ev.Severity = "debug"
		default:
			ev.Severity = "info"
		}

		ev.Message = rec.TextPayload
		if ev.Message == "" && rec.Proto.Status.Message != "" {
			ev.Message = rec.Proto.Status.Message
		}
		if ev.Message == "" && rec.Proto.MethodName != "" {
			ev.Message = rec.Proto.MethodName
		}
		if ev.Message == "" && len(rec.JSONPayload) > 0 {
			ev.Message = string(rec.JSONPayload)
			ev.StructuredData = string(rec.JSONPayload)
		}

		if rec.Proto.Status.Code != 0 {
			ev.Status = types.StatusFail
		} else if ev.Severity == "error" || ev.Severity == "critical" {
			ev.Status = types.StatusError
		} else {
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("gcp_cloud_logging", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}
