package types

// ScanOptions is the parsed, validated form of a table function call's
// arguments. internal/bind builds one of these from raw positional and
// named parameters; internal/engine consumes it to drive the scan.
type ScanOptions struct {
	// Source is the positional source/content argument: a file path, a
	// glob, a directory, or (for parse_*) always inline content.
	Source string

	// Inline marks that Source must be treated as literal content rather
	// than resolved through the filesystem (always true for parse_*, and
	// true for read_* when C10's expansion yields zero files).
	Inline bool

	// Format is the raw format argument: "auto", a canonical name, an
	// alias, a group name, or "regexp:<pattern>". Defaults to "auto".
	Format string

	// SeverityThreshold is the minimum SeverityLevel an event must reach
	// to survive C8. Defaults to SeverityDebug (admit everything).
	SeverityThreshold SeverityLevel

	// IgnoreErrors controls whether a per-file decoder error is swallowed
	// (true) or re-raised (false) in multi-file mode. Default false.
	IgnoreErrors bool

	// Content selects how log_content is shaped at emission.
	// Default ContentFull.
	Content ContentMode

	// ContextLines, when > 0, requests the optional parallel `context`
	// column: a window of N raw source lines on either side of an event's
	// log span. Default 0 (column omitted).
	ContextLines int
}

// DefaultScanOptions returns the options a bare call with no named
// parameters would resolve to: format=auto, severity_threshold=debug,
// ignore_errors=false, content=full, context_lines=0.
func DefaultScanOptions(source string) ScanOptions {
	return ScanOptions{
		Source:            source,
		Format:            "auto",
		SeverityThreshold: SeverityDebug,
		IgnoreErrors:      false,
		Content:           ContentMode{Kind: ContentFull},
		ContextLines:      0,
	}
}
