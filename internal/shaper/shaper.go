// Package shaper implements the content shaper: transforming
// log_content at emission time per the scan's configured content mode,
// and building the optional per-event context-line window.
package shaper

import (
	"strings"

	"devlogscan/pkg/types"
)

// Shape transforms content according to mode. full emits as-is, none
// emits "" (the caller projects empty log_content to NULL), and
// limit(k)/smart truncate. logLineStart/logLineEnd are 1-based,
// -1/absent when the event carries no line span.
func Shape(content string, mode types.ContentMode, logLineStart, logLineEnd int32) string {
	switch mode.Kind {
	case types.ContentFull:
		return content
	case types.ContentNone:
		return ""
	case types.ContentSmart:
		return shapeSmart(content, mode.Limit, logLineStart, logLineEnd)
	default:
		return shapeLimit(content, mode.Limit)
	}
}

func shapeLimit(content string, k int) string {
	if k <= 0 {
		return ""
	}
	if len(content) <= k {
		return content
	}
	return content[:k] + "..."
}

// shapeSmart windows content around the event's line span: given
// a line span, it takes lines [start-2 .. end+2] (clamped to the
// buffer), marking a truncated head/tail with "...\n"/"...". It falls
// back to limit(k) when content has no usable line span, or when the
// assembled window still exceeds k.
func shapeSmart(content string, k int, logLineStart, logLineEnd int32) string {
	if logLineStart <= 0 {
		return shapeLimit(content, k)
	}

	lines := strings.Split(content, "\n")
	n := len(lines)
	start := int(logLineStart) - 1 - 2
	end := int(logLineEnd) - 1 + 2
	if logLineEnd <= 0 {
		end = int(logLineStart) - 1 + 2
	}
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}
	if start > end {
		return shapeLimit(content, k)
	}

	window := strings.Join(lines[start:end+1], "\n")
	truncatedHead := start > 0
	truncatedTail := end < n-1

	var b strings.Builder
	if truncatedHead {
		b.WriteString("...\n")
	}
	b.WriteString(window)
	if truncatedTail {
		b.WriteString("...")
	}

	assembled := b.String()
	if len(assembled) > k {
		return shapeLimit(content, k)
	}
	return assembled
}

// ContextWindow builds the optional context column: the lines
// [start-n .. end+n] of buffer (1-based, clamped), each flagged
// is_event when it falls inside [start, end]. Returns nil when buffer is
// empty or the event carries no line span (absent buffer or absent
// event line range projects to NULL).
func ContextWindow(buffer []string, logLineStart, logLineEnd int32, n int) []types.ContextLine {
	if len(buffer) == 0 || logLineStart <= 0 {
		return nil
	}
	end := logLineEnd
	if end <= 0 {
		end = logLineStart
	}

	lo := int(logLineStart) - n
	hi := int(end) + n
	if lo < 1 {
		lo = 1
	}
	if hi > len(buffer) {
		hi = len(buffer)
	}
	if lo > hi {
		return nil
	}

	out := make([]types.ContextLine, 0, hi-lo+1)
	for ln := lo; ln <= hi; ln++ {
		out = append(out, types.ContextLine{
			LineNumber: ln,
			Content:    buffer[ln-1],
			IsEvent:    int32(ln) >= logLineStart && int32(ln) <= end,
		})
	}
	return out
}
