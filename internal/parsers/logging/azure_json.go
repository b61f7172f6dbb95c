package logging

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// AzureActivity decodes Azure Activity Log export records: either the
// `{"records":[...]}` envelope the diagnostic-settings export writes or
// bare JSONL. One event per management-plane operation.
type AzureActivity struct{}

type azureDoc struct {
	Records []azureRecord `json:"records"`
}

type azureRecord struct {
	Time          string `json:"time"`
	Timestamp     string `json:"eventTimestamp"`
	OperationName string `json:"operationName"`
	Level         string `json:"level"`
	ResultType    string `json:"resultType"`
	Status        string `json:"status"`
	Caller        string `json:"caller"`
	ResourceID    string `json:"resourceId"`
	CorrelationID string `json:"correlationId"`
	Category      string `json:"category"`
	CallerIP      string `json:"callerIpAddress"`
}

func NewAzureActivity() parser.Parser { return AzureActivity{} }

func (AzureActivity) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.AzureActivity,
		DisplayName: "Azure Activity Log",
		Priority:    48,
		Category:    parser.CategoryLogging,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"azure_activity_log"},
	}
}

func (AzureActivity) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "{") {
		return false
	}
	return strings.Contains(t, `"operationName"`) &&
		(strings.Contains(t, `"resourceId"`) || strings.Contains(t, `"correlationId"`))
}

func (AzureActivity) Parse(content string) ([]types.ValidationEvent, error) {
	var events []types.ValidationEvent
	for _, r := range azureRecords(content) {
		ev := types.NewEvent("azure_activity", types.EventTypeDebugEvent)
		ev.Category = "cloud_log"
		if r.rec.Category != "" {
			ev.Category = strings.ToLower(r.rec.Category)
		}
		ev.StartedAt = r.rec.Time
		if ev.StartedAt == "" {
			ev.StartedAt = r.rec.Timestamp
		}
		ev.FunctionName = r.rec.OperationName
		ev.Message = r.rec.OperationName
		ev.Principal = r.rec.Caller
		ev.Origin = r.rec.CallerIP
		ev.Target = r.rec.ResourceID
		ev.ExternalID = canonicalCorrelationID(r.rec.CorrelationID)
		if r.line > 0 {
			ev.LogLineStart = int32(r.line)
			ev.LogLineEnd = int32(r.line)
		}

		ev.Severity = types.ParseSeverityLevel(r.rec.Level).String()
		result := r.rec.ResultType
		if result == "" {
			result = r.rec.Status
		}
		switch strings.ToLower(result) {
		case "failure", "failed", "error":
			ev.Status = types.StatusFail
			if ev.Severity == "info" {
				ev.Severity = "error"
			}
			ev.ErrorCode = result
		default:
			ev.Status = types.StatusPass
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("azure_activity", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

type azureParsed struct {
	rec  azureRecord
	line int
}

func azureRecords(content string) []azureParsed {
	t := strings.TrimSpace(content)

	var doc azureDoc
	if err := json.Unmarshal([]byte(t), &doc); err == nil && len(doc.Records) > 0 {
		out := make([]azureParsed, 0, len(doc.Records))
		for _, rec := range doc.Records {
			out = append(out, azureParsed{rec: rec})
		}
		return out
	}

	var out []azureParsed
	for i, line := range textutil.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec azureRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.OperationName == "" {
			continue
		}
		out = append(out, azureParsed{rec: rec, line: i + 1})
	}
	return out
}

// canonicalCorrelationID renders a correlation id in canonical UUID form
// when it parses as one, passing anything else through unchanged.
func canonicalCorrelationID(id string) string {
	if id == "" {
		return ""
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}
