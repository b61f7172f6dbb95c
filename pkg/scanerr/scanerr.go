// Package scanerr provides the standardized error type used across
// devlogscan: a single *ScanError carrying a component, an operation, a
// severity, and a stable code, rather than a bespoke struct per error
// kind.
package scanerr

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Severity ranks how an error should be handled by a caller deciding
// whether to abort a scan or keep going.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Code identifies the error kind. Multi-file mode and bind-time
// validation branch on these rather than on error string matching.
type Code string

const (
	// CodeBind covers malformed options: unknown format, invalid content
	// mode, bad severity threshold. Surfaced as a binder-stage failure.
	CodeBind Code = "BIND_ERROR"
	// CodeIO covers a missing file or a read failure. Bubbles up in
	// single-file mode; always swallowed per-file in multi-file mode.
	CodeIO Code = "IO_ERROR"
	// CodeMissingCapability covers an XML decoder invoked without an
	// XML-to-JSON facility registered on the parser Context.
	CodeMissingCapability Code = "MISSING_CAPABILITY"
	// CodeDecoder covers malformed content for a chosen decoder. In auto
	// mode a decoder should degrade to a summary event instead of
	// returning this; in explicit-format mode it may surface it.
	CodeDecoder Code = "DECODER_ERROR"
	// CodePattern covers an invalid regexp in a "regexp:" format string.
	// Surfaced at bind time.
	CodePattern Code = "PATTERN_ERROR"
)

// ScanError is the single error type devlogscan returns from any
// component. It carries enough structure for a caller to log it, branch on
// its Code, and attach it to a logrus field set.
type ScanError struct {
	Code      Code
	Component string
	Operation string
	Message   string
	Cause     error
	Severity  Severity
	Site      string // file:line captured at construction
	Timestamp time.Time
}

// New constructs a ScanError rooted at the caller's source location.
func New(code Code, component, operation, message string) *ScanError {
	_, file, line, _ := runtime.Caller(1)
	return &ScanError{
		Code:      code,
		Component: component,
		Operation: operation,
		Message:   message,
		Severity:  defaultSeverity(code),
		Site:      fmt.Sprintf("%s:%d", file, line),
		Timestamp: time.Now(),
	}
}

func defaultSeverity(code Code) Severity {
	switch code {
	case CodeBind, CodePattern:
		return SeverityHigh
	case CodeMissingCapability:
		return SeverityHigh
	case CodeIO:
		return SeverityMedium
	default:
		return SeverityMedium
	}
}

// Wrap attaches a cause and returns the receiver for chaining.
func (e *ScanError) Wrap(cause error) *ScanError {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Component, e.Operation, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Component, e.Operation, e.Code, e.Message)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is reports whether err is a *ScanError with the same Code, so callers can
// write errors.Is(err, scanerr.New(scanerr.CodeIO, ...)) style checks, or
// more idiomatically use the Is* helpers below.
func (e *ScanError) Is(target error) bool {
	other, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Bind, IO, MissingCapability, Decoder, and Pattern are convenience
// constructors for the five error kinds.

func Bind(operation, message string) *ScanError {
	return New(CodeBind, "bind", operation, message)
}

func IO(operation, message string) *ScanError {
	return New(CodeIO, "source", operation, message)
}

func MissingCapability(operation, message string) *ScanError {
	return New(CodeMissingCapability, "parser", operation, message)
}

func Decoder(operation, message string) *ScanError {
	return New(CodeDecoder, "decoder", operation, message)
}

func Pattern(operation, message string) *ScanError {
	return New(CodePattern, "regexp", operation, message)
}

// CodeOf extracts the Code from err if it is (or wraps) a *ScanError.
func CodeOf(err error) (Code, bool) {
	var se *ScanError
	if !errors.As(err, &se) {
		return "", false
	}
	return se.Code, true
}

// IsIO reports whether err is an I/O-kind ScanError, the check multi-file
// expansion uses to decide whether to always swallow: an I/O failure on
// a single file never aborts a multi-file scan.
func IsIO(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeIO
}
