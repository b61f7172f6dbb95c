package logging

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// AWSCloudTrail decodes CloudTrail audit logs: either the standard
// delivery envelope `{"Records":[...]}` or bare one-record-per-line
// JSONL. One event per API call record; records carrying an errorCode
// (AccessDenied and friends) become failed security findings.
type AWSCloudTrail struct{}

type cloudTrailDoc struct {
	Records []cloudTrailRecord `json:"Records"`
}

type cloudTrailRecord struct {
	EventTime       string              `json:"eventTime"`
	EventName       string              `json:"eventName"`
	EventSource     string              `json:"eventSource"`
	AWSRegion       string              `json:"awsRegion"`
	SourceIPAddress string              `json:"sourceIPAddress"`
	UserIdentity    cloudTrailIdentity  `json:"userIdentity"`
	ErrorCode       string              `json:"errorCode"`
	ErrorMessage    string              `json:"errorMessage"`
	EventID         string              `json:"eventID"`
}

type cloudTrailIdentity struct {
	Type     string `json:"type"`
	ARN      string `json:"arn"`
	UserName string `json:"userName"`
}

func NewAWSCloudTrail() parser.Parser { return AWSCloudTrail{} }

func (AWSCloudTrail) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.AWSCloudTrail,
		DisplayName: "AWS CloudTrail",
		Priority:    50,
		Category:    parser.CategorySecurity,
		Groups:      []string{catalog.GroupCI},
		Aliases:     []string{"cloudtrail"},
	}
}

func (AWSCloudTrail) CanParse(content string) bool {
	t := strings.TrimSpace(content)
	if !strings.HasPrefix(t, "{") {
		return false
	}
	return strings.Contains(t, `"eventSource"`) &&
		(strings.Contains(t, `"Records"`) || strings.Contains(t, `"eventTime"`))
}

func (AWSCloudTrail) Parse(content string) ([]types.ValidationEvent, error) {
	records := cloudTrailRecords(content)

	var events []types.ValidationEvent
	for _, r := range records {
		ev := types.NewEvent("cloudtrail", types.EventTypeSecurityFinding)
		ev.Category = "security_audit"
		ev.StartedAt = r.rec.EventTime
		ev.FunctionName = r.rec.EventName
		ev.Target = r.rec.EventSource
		ev.Origin = r.rec.SourceIPAddress
		ev.ActorType = r.rec.UserIdentity.Type
		ev.Principal = r.rec.UserIdentity.ARN
		if ev.Principal == "" {
			ev.Principal = r.rec.UserIdentity.UserName
		}
		ev.ExternalID = canonicalEventID(r.rec.EventID)
		ev.StructuredData = r.raw
		if r.line > 0 {
			ev.LogLineStart = int32(r.line)
			ev.LogLineEnd = int32(r.line)
		}

		if r.rec.ErrorCode != "" {
			ev.ErrorCode = r.rec.ErrorCode
			ev.Message = r.rec.ErrorMessage
			if ev.Message == "" {
				ev.Message = r.rec.EventName + " failed: " + r.rec.ErrorCode
			}
			ev.Status = types.StatusFail
			ev.Severity = "error"
		} else {
			ev.Message = r.rec.EventName
			ev.Status = types.StatusPass
			ev.Severity = "info"
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		ev := types.NewEvent("cloudtrail", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

type cloudTrailParsed struct {
	rec  cloudTrailRecord
	raw  string
	line int // 1-based for JSONL input, 0 for envelope records
}

// cloudTrailRecords accepts both the Records envelope and bare JSONL.
func cloudTrailRecords(content string) []cloudTrailParsed {
	t := strings.TrimSpace(content)

	var doc cloudTrailDoc
	if err := json.Unmarshal([]byte(t), &doc); err == nil && len(doc.Records) > 0 {
		var raws struct {
			Records []json.RawMessage `json:"Records"`
		}
		_ = json.Unmarshal([]byte(t), &raws)
		out := make([]cloudTrailParsed, 0, len(doc.Records))
		for i, rec := range doc.Records {
			raw := ""
			if i < len(raws.Records) {
				raw = string(raws.Records[i])
			}
			out = append(out, cloudTrailParsed{rec: rec, raw: raw})
		}
		return out
	}

	var out []cloudTrailParsed
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec cloudTrailRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.EventSource == "" {
			continue
		}
		out = append(out, cloudTrailParsed{rec: rec, raw: line, line: i + 1})
	}
	return out
}

// canonicalEventID normalizes a CloudTrail eventID to the canonical
// lower-case-hyphenated UUID form when it parses as one, and passes it
// through untouched otherwise; correlation ids are matched elsewhere by
// string equality, so a consistent rendering matters more than validity.
func canonicalEventID(id string) string {
	if id == "" {
		return ""
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}
