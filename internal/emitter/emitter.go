// Package emitter implements the chunked emitter: it holds the
// fully materialized event vector for a scan and serves it out in
// bounded, vector-sized pulls, applying content shaping and the
// NULL-projection rules on the way out. The scan model is
// single-threaded, so the cursor/vector pair carries no mutex: a scan's
// emitter is never shared.
package emitter

import (
	"devlogscan/internal/shaper"
	"devlogscan/pkg/types"
)

// Row is the nullable wire projection of one ValidationEvent, matching
// the fixed output column order. Pointer fields are nil for NULL.
type Row struct {
	EventID         int64
	ToolName        *string
	EventType       string
	RefFile         *string
	RefLine         *int32
	RefColumn       *int32
	FunctionName    *string
	Status          *string
	Severity        *string
	Category        *string
	ErrorCode       *string
	Message         *string
	Suggestion      *string
	LogContent      *string
	StructuredData  *string
	LogLineStart    *int32
	LogLineEnd      *int32
	LogFile         *string
	TestName        *string
	ExecutionTime   *float64
	Principal       *string
	Origin          *string
	Target          *string
	ActorType       *string
	StartedAt       *string
	ExternalID      *string
	Scope           *string
	ScopeID         *string
	ScopeStatus     *string
	Group           *string
	GroupID         *string
	GroupStatus     *string
	Unit            *string
	UnitID          *string
	UnitStatus      *string
	Subunit         *string
	SubunitID       *string
	Fingerprint     *string
	SimilarityScore *float64
	PatternID       *int64
	Context         []types.ContextLine
}

// Emitter holds the materialized event vector for one scan and serves it
// in vector_size-row chunks. All parsing and post-processing
// happens before construction, during the init-global phase; Emitter
// itself does no decoding.
type Emitter struct {
	events       []types.ValidationEvent
	cursor       int
	contentMode  types.ContentMode
	contextLines int
	buffers      map[string][]string // log_file -> full line buffer, for the context column
}

// New builds an Emitter over events (already filtered, clustered, and in
// final emission order). buffers maps a source file path to its full
// line buffer, used only when contextLines > 0; pass nil when no
// context column is requested.
func New(events []types.ValidationEvent, contentMode types.ContentMode, contextLines int, buffers map[string][]string) *Emitter {
	for i := range events {
		events[i].EventID = int64(i + 1)
	}
	return &Emitter{
		events:       events,
		contentMode:  contentMode,
		contextLines: contextLines,
		buffers:      buffers,
	}
}

// Len reports the total number of events the emitter holds.
func (e *Emitter) Len() int { return len(e.events) }

// Pull returns up to vectorSize rows starting at the current cursor and
// advances the cursor. An empty, non-nil slice signals end of scan.
func (e *Emitter) Pull(vectorSize int) []Row {
	remaining := len(e.events) - e.cursor
	if remaining <= 0 {
		return []Row{}
	}
	n := vectorSize
	if n > remaining {
		n = remaining
	}

	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, e.project(e.events[e.cursor+i]))
	}
	e.cursor += n
	return rows
}

// project converts one ValidationEvent to its nullable Row projection,
// applying content shaping and the NULL-projection rules.
func (e *Emitter) project(ev types.ValidationEvent) Row {
	content := shaper.Shape(ev.LogContent, e.contentMode, int32(ev.LogLineStart), int32(ev.LogLineEnd))

	r := Row{
		EventID:         ev.EventID,
		ToolName:        strPtr(ev.ToolName),
		EventType:       string(ev.EventType),
		RefFile:         optStr(ev.RefFile),
		RefLine:         optInt32(ev.RefLine),
		RefColumn:       optInt32(ev.RefColumn),
		FunctionName:    optStr(ev.FunctionName),
		ErrorCode:       optStr(ev.ErrorCode),
		Message:         optStr(ev.Message),
		Suggestion:      optStr(ev.Suggestion),
		LogContent:      optStr(content),
		StructuredData:  optStr(ev.StructuredData),
		LogLineStart:    optInt32(ev.LogLineStart),
		LogLineEnd:      optInt32(ev.LogLineEnd),
		LogFile:         optStr(ev.LogFile),
		TestName:        optStr(ev.TestName),
		ExecutionTime:   execTimePtr(ev),
		Principal:       optStr(ev.Principal),
		Origin:          optStr(ev.Origin),
		Target:          optStr(ev.Target),
		ActorType:       optStr(ev.ActorType),
		StartedAt:       optStr(ev.StartedAt),
		ExternalID:      optStr(ev.ExternalID),
		Scope:           optStr(ev.Scope),
		ScopeID:         optStr(ev.ScopeID),
		ScopeStatus:     optStr(ev.ScopeStatus),
		Group:           optStr(ev.Group),
		GroupID:         optStr(ev.GroupID),
		GroupStatus:     optStr(ev.GroupStatus),
		Unit:            optStr(ev.Unit),
		UnitID:          optStr(ev.UnitID),
		UnitStatus:      optStr(ev.UnitStatus),
		Subunit:         optStr(ev.Subunit),
		SubunitID:       optStr(ev.SubunitID),
		Fingerprint:     optStr(ev.Fingerprint),
		SimilarityScore: optScore(ev.SimilarityScore),
		PatternID:       optPatternID(ev.PatternID),
	}

	if ev.EventType == types.EventTypeUnknown {
		r.Status = nil
		r.Severity = nil
	} else {
		r.Status = optStr(string(ev.Status))
		r.Severity = optStr(ev.Severity)
	}

	if e.contextLines > 0 {
		r.Context = shaper.ContextWindow(e.buffers[ev.LogFile], int32(ev.LogLineStart), int32(ev.LogLineEnd), e.contextLines)
	}

	return r
}

func strPtr(s string) *string { return &s }

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt32(v int32) *int32 {
	if v == -1 {
		return nil
	}
	return &v
}

func optPatternID(v int64) *int64 {
	if v == -1 {
		return nil
	}
	return &v
}

func optScore(v float64) *float64 {
	if v == 0.0 {
		return nil
	}
	return &v
}

func execTimePtr(ev types.ValidationEvent) *float64 {
	if !ev.HasExecutionTime {
		return nil
	}
	v := ev.ExecutionTime
	return &v
}
