package types

import (
	"strconv"
	"strings"
)

// EventType classifies the kind of finding a decoder produced. The set is
// closed and mirrors the ValidationEventType enum from the source format:
// decoders must map onto one of these values rather than inventing new ones.
type EventType string

const (
	EventTypeTestResult       EventType = "test_result"
	EventTypeLintIssue        EventType = "lint_issue"
	EventTypeTypeError        EventType = "type_error"
	EventTypeSecurityFinding  EventType = "security_finding"
	EventTypeBuildError       EventType = "build_error"
	EventTypePerformanceIssue EventType = "performance_issue"
	EventTypeMemoryError      EventType = "memory_error"
	EventTypeMemoryLeak       EventType = "memory_leak"
	EventTypeThreadError      EventType = "thread_error"
	EventTypePerformanceMetric EventType = "performance_metric"
	EventTypeSummary          EventType = "summary"
	EventTypeDebugEvent       EventType = "debug_event"
	EventTypeCrashSignal      EventType = "crash_signal"
	EventTypeDebugInfo        EventType = "debug_info"
	EventTypeUnknown          EventType = "unknown"
)

// EventStatus is the outcome recorded against an event, when one applies.
type EventStatus string

const (
	StatusPass    EventStatus = "pass"
	StatusFail    EventStatus = "fail"
	StatusSkip    EventStatus = "skip"
	StatusError   EventStatus = "error"
	StatusWarning EventStatus = "warning"
	StatusInfo    EventStatus = "info"
)

// SeverityLevel is an ordered ranking used by the threshold filter.
// Higher values are more severe; the zero value is unset and never compared.
type SeverityLevel int

const (
	SeverityUnknown SeverityLevel = iota
	SeverityDebug
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String renders the level using the canonical lower-case spelling used in
// the `severity` column and in `severity_threshold` bind option.
func (l SeverityLevel) String() string {
	switch l {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// ParseSeverityLevel maps a free-text severity string (case-insensitive) to
// a SeverityLevel. Unknown or empty input maps to SeverityInfo, so
// unlabeled events survive any threshold at or below info.
func ParseSeverityLevel(s string) SeverityLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return SeverityDebug
	case "info", "notice":
		return SeverityInfo
	case "warning", "warn":
		return SeverityWarning
	case "error", "fail", "failed":
		return SeverityError
	case "critical", "fatal", "panic", "crit":
		return SeverityCritical
	default:
		return SeverityInfo
	}
}

// ContentModeKind selects how log_content is shaped at emission time.
type ContentModeKind int

const (
	ContentFull ContentModeKind = iota
	ContentNone
	ContentLimit
	ContentSmart
)

// ContentMode pairs a shaping kind with the byte budget used by Limit/Smart.
type ContentMode struct {
	Kind  ContentModeKind
	Limit int
}

// ParseContentMode interprets the `content` named bind parameter:
// an integer k selects limit(k) (0 or negative selects none), and the
// strings "full"/"none"/"smart" select the matching mode directly.
func ParseContentMode(raw string) (ContentMode, bool) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "full":
		return ContentMode{Kind: ContentFull}, true
	case "none":
		return ContentMode{Kind: ContentNone}, true
	case "smart":
		return ContentMode{Kind: ContentSmart, Limit: defaultSmartLimit}, true
	}

	if k, err := strconv.Atoi(trimmed); err == nil {
		if k <= 0 {
			return ContentMode{Kind: ContentNone}, true
		}
		return ContentMode{Kind: ContentLimit, Limit: k}, true
	}

	return ContentMode{}, false
}

// defaultSmartLimit is the fallback budget used when "smart" is requested
// without an accompanying integer limit (the bind layer normally supplies
// one; this keeps ParseContentMode total).
const defaultSmartLimit = 2000
