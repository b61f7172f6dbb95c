// Package bind implements the bind/dispatch shim: validating a
// table function call's raw arguments into a types.ScanOptions, and
// classifying the resolved format string into the code path the engine
// should take (named lookup, group dispatch, regexp decoder, or
// auto-detection).
package bind

import (
	"strings"

	"devlogscan/internal/registry"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/scanerr"
	"devlogscan/pkg/types"
)

// PathKind is the dispatch path bind.Resolve selects for a format string.
type PathKind int

const (
	PathAuto PathKind = iota
	PathFormat
	PathGroup
	PathRegexp
)

// String renders the path kind as the stable label used in metrics and
// diagnostic logging.
func (k PathKind) String() string {
	switch k {
	case PathFormat:
		return "format"
	case PathGroup:
		return "group"
	case PathRegexp:
		return "regexp"
	default:
		return "auto"
	}
}

// Path is the resolved dispatch path: which PathKind, and whichever of
// FormatName/GroupName/Pattern applies to that kind.
type Path struct {
	Kind       PathKind
	FormatName string
	GroupName  string
	Pattern    string
}

// RawArgs is the unvalidated argument bag a table-function call passes
// in: positional source/content plus the named parameters.
type RawArgs struct {
	Source            string
	Format            string // "" defaults to "auto"
	SeverityThreshold string // "" defaults to "debug"
	IgnoreErrors      bool
	Content           string // "" defaults to "full"; may be an integer literal
	ContextLines      int
	Inline            bool
}

// Validate builds a types.ScanOptions from raw, applying the documented
// defaults and rejecting malformed arguments with a BindError.
func Validate(raw RawArgs) (types.ScanOptions, error) {
	opts := types.DefaultScanOptions(raw.Source)
	opts.Inline = raw.Inline
	opts.IgnoreErrors = raw.IgnoreErrors
	opts.ContextLines = raw.ContextLines

	if raw.Format != "" {
		opts.Format = raw.Format
	}

	if raw.SeverityThreshold != "" {
		level, ok := parseThresholdStrict(raw.SeverityThreshold)
		if !ok {
			return types.ScanOptions{}, scanerr.Bind("bind.validate", "invalid severity_threshold: "+raw.SeverityThreshold)
		}
		opts.SeverityThreshold = level
	}

	if raw.Content != "" {
		mode, ok := types.ParseContentMode(raw.Content)
		if !ok {
			return types.ScanOptions{}, scanerr.Bind("bind.validate", "invalid content mode: "+raw.Content)
		}
		opts.Content = mode
	}

	if opts.Source == "" && !opts.Inline {
		return types.ScanOptions{}, scanerr.Bind("bind.validate", "source/content argument is required")
	}

	return opts, nil
}

// parseThresholdStrict rejects unrecognized threshold strings outright,
// unlike types.ParseSeverityLevel's permissive "unknown -> info" mapping
// used for per-event severity values: a bind-time typo should fail loud.
func parseThresholdStrict(s string) (types.SeverityLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return types.SeverityDebug, true
	case "info", "notice":
		return types.SeverityInfo, true
	case "warning", "warn":
		return types.SeverityWarning, true
	case "error", "fail", "failed":
		return types.SeverityError, true
	case "critical", "fatal", "panic", "crit":
		return types.SeverityCritical, true
	default:
		return 0, false
	}
}

// Resolve classifies opts.Format into a dispatch Path. It
// rejects formats that are neither a recognized name/alias, a known
// group, nor a regexp: template; those fall through to the default
// case, which is an error the caller surfaces as BindError.
func Resolve(reg *registry.Registry, format string) (Path, error) {
	if format == "" || strings.EqualFold(format, "auto") {
		return Path{Kind: PathAuto}, nil
	}

	if strings.HasPrefix(format, "regexp:") {
		pattern := strings.TrimPrefix(format, "regexp:")
		if pattern == "" {
			return Path{}, scanerr.Bind("bind.resolve", "regexp: format requires a pattern")
		}
		return Path{Kind: PathRegexp, Pattern: pattern}, nil
	}

	canon := catalog.Canonicalize(format)
	if reg.HasFormat(canon) {
		return Path{Kind: PathFormat, FormatName: canon}, nil
	}

	if reg.IsGroup(format) {
		return Path{Kind: PathGroup, GroupName: strings.ToLower(strings.TrimSpace(format))}, nil
	}

	return Path{}, scanerr.Bind("bind.resolve", "unrecognized format: "+format)
}
