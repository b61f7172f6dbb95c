// Package types defines the wide validation-event record every decoder in
// devlogscan produces, the closed vocabulary of enums it draws from, and the
// scan-level options that shape how a batch of events is filtered, shaped,
// and emitted.
//
// This package provides:
//   - ValidationEvent: the normalized record every decoder emits
//   - EventType/EventStatus/SeverityLevel/ContentMode: the closed enum set
//   - ScanOptions: the parsed form of a table function's bind arguments
//
// ValidationEvent is intentionally wide: it is the single record shape every
// decoder, whether it reads JSON, JSONL, XML, or line-oriented text,
// normalizes into, so that downstream clustering, filtering, and shaping
// never need to know which decoder produced a given row.
package types

// ValidationEvent is the normalized record emitted by every decoder. Fields
// are optional unless noted; absent values use the sentinels documented
// alongside each field rather than Go's zero value, because zero is
// sometimes a legitimate measurement (ExecutionTime: 0.0 is a real
// duration, not "absent").
type ValidationEvent struct {
	// Identification.
	EventID   int64     // assigned during emission; monotonic from 1
	ToolName  string    // required
	EventType EventType // required

	// Referenced code location: where the *log* points, not where the log
	// itself lives (see LogFile/LogLineStart/LogLineEnd for that).
	RefFile      string
	RefLine      int32 // -1 means absent
	RefColumn    int32 // -1 means absent
	FunctionName string

	// Classification.
	Status    EventStatus
	Severity  string // free text, typically error|warning|info|critical|debug
	Category  string
	ErrorCode string

	// Content.
	Message        string
	Suggestion     string
	LogContent     string // raw excerpt, reshaped by the content shaper at emission
	StructuredData string // JSON blob or format tag

	// Log source tracking.
	LogFile      string
	LogLineStart int32 // 1-based inclusive; -1 means absent
	LogLineEnd   int32 // 1-based inclusive; -1 means absent

	// Test-specific.
	TestName         string
	ExecutionTime    float64 // milliseconds; 0.0 is a legitimate measurement
	HasExecutionTime bool    // distinguishes "0.0 measured" from "never set"

	// Identity/network.
	Principal string
	Origin    string
	Target    string
	ActorType string

	// Temporal.
	StartedAt string // ISO-8601

	// Correlation.
	ExternalID string

	// Hierarchical context, four levels deep.
	Scope       string
	ScopeID     string
	ScopeStatus string

	Group       string
	GroupID     string
	GroupStatus string

	Unit       string
	UnitID     string
	UnitStatus string

	Subunit   string
	SubunitID string

	// Clustering, filled by the fingerprint/cluster engine.
	Fingerprint     string
	SimilarityScore float64 // 0..1
	PatternID       int64   // -1 when unassigned

	// Context column inputs, not emitted directly: populated by a decoder
	// that has access to the full source buffer, consumed by the content
	// shaper to build the optional `context` column.
	ContextLines []ContextLine
}

// ContextLine is one row of the optional parallel `context` column: a
// window of raw source lines around an event's log span.
type ContextLine struct {
	LineNumber int
	Content    string
	IsEvent    bool
}

// NewEvent returns a ValidationEvent with every "absent" sentinel set:
// -1 for unset line/column fields and pattern id,
// empty string for unset text fields. Decoders should start from this
// rather than a bare struct literal so that omitted fields read as absent,
// not as the zero value of their type.
func NewEvent(toolName string, eventType EventType) ValidationEvent {
	return ValidationEvent{
		ToolName:     toolName,
		EventType:    eventType,
		RefLine:      -1,
		RefColumn:    -1,
		LogLineStart: -1,
		LogLineEnd:   -1,
		PatternID:    -1,
	}
}

// HasLineSpan reports whether both log line bounds are set, per the
// invariant that log_line_start <= log_line_end whenever both are present.
func (e *ValidationEvent) HasLineSpan() bool {
	return e.LogLineStart > 0 && e.LogLineEnd > 0
}
