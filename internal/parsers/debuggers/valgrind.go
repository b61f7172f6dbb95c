// Package debuggers decodes debugger and dynamic-analysis transcripts:
// Valgrind tool output (Memcheck, Helgrind) and GDB/LLDB session logs.
package debuggers

import (
	"regexp"
	"strings"

	"devlogscan/internal/parsers/textutil"
	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

// Valgrind decodes the `==pid==`-prefixed report blocks Valgrind tools
// emit: invalid accesses and uninitialised reads become memory_error
// events, leak records memory_leak, Helgrind race reports thread_error,
// and the closing ERROR SUMMARY a summary event. Each report block
// (the headline plus its stack frames) is one event spanning the whole
// block, with the topmost resolvable frame as the referenced location.
type Valgrind struct{}

var (
	valgrindLineRe    = regexp.MustCompile(`^==(\d+)==\s?(.*)$`)
	valgrindFrameRe   = regexp.MustCompile(`(?:at|by)\s+0x[0-9A-Fa-f]+:\s+(\S+)\s+\(([^:)]+):(\d+)\)`)
	valgrindLeakRe    = regexp.MustCompile(`^([\d,]+)\s+bytes?\s+in\s+[\d,]+\s+blocks?\s+are\s+(definitely|indirectly|possibly)\s+lost`)
	valgrindSummaryRe = regexp.MustCompile(`^ERROR SUMMARY:\s+(\d+)\s+errors?`)
)

func NewValgrind() parser.Parser { return Valgrind{} }

func (Valgrind) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName:  catalog.Valgrind,
		DisplayName: "Valgrind",
		Priority:    72,
		Category:    parser.CategoryDebugger,
		Groups:      []string{catalog.GroupCCpp},
		Aliases:     []string{"memcheck"},
	}
}

func (Valgrind) CanParse(content string) bool {
	if !strings.Contains(content, "==") {
		return strings.Contains(content, "Invalid read") || strings.Contains(content, "Invalid write")
	}
	for _, tool := range []string{"Memcheck", "Helgrind", "Cachegrind", "Massif", "DRD"} {
		if strings.Contains(content, tool) {
			return true
		}
	}
	return strings.Contains(content, "definitely lost") ||
		strings.Contains(content, "Invalid read") ||
		strings.Contains(content, "Invalid write") ||
		strings.Contains(content, "Possible data race")
}

func (Valgrind) Parse(content string) ([]types.ValidationEvent, error) {
	lines := textutil.Lines(content)
	var events []types.ValidationEvent

	for i := 0; i < len(lines); i++ {
		m := valgrindLineRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		body := strings.TrimSpace(m[2])

		if sm := valgrindSummaryRe.FindStringSubmatch(body); sm != nil {
			ev := types.NewEvent("valgrind", types.EventTypeSummary)
			ev.Category = "summary"
			ev.Message = body
			ev.LogLineStart = int32(i + 1)
			ev.LogLineEnd = int32(i + 1)
			if textutil.AtoiOr(sm[1], 0) > 0 {
				ev.Status = types.StatusError
				ev.Severity = "error"
			} else {
				ev.Status = types.StatusPass
				ev.Severity = "info"
			}
			events = append(events, ev)
			continue
		}

		eventType, ok := valgrindHeadline(body)
		if !ok {
			continue
		}

		// The report block is the headline plus every following ==pid==
		// line that still has content (a blank ==pid== line closes it).
		block := textutil.CollectBlock(lines, i, func(l string) bool {
			bm := valgrindLineRe.FindStringSubmatch(l)
			return bm == nil || strings.TrimSpace(bm[2]) == ""
		})

		ev := types.NewEvent("valgrind", eventType)
		ev.Category = string(eventType)
		ev.Message = body
		ev.LogContent = block.Text
		ev.LogLineStart = int32(block.LineStart)
		ev.LogLineEnd = int32(block.LineEnd)
		ev.Status = types.StatusFail
		ev.Severity = "error"
		if eventType == types.EventTypeMemoryLeak {
			ev.Severity = "warning"
		}

		if fm := valgrindFrameRe.FindStringSubmatch(block.Text); fm != nil {
			ev.FunctionName = fm[1]
			ev.RefFile = fm[2]
			ev.RefLine = textutil.AtoiOr32(fm[3], -1)
		}

		events = append(events, ev)
		i = block.LineEnd - 1
	}

	if len(events) == 0 {
		ev := types.NewEvent("valgrind", types.EventTypeSummary)
		ev.Category = "summary"
		ev.Status = types.StatusPass
		ev.Severity = "info"
		ev.Message = "no records found"
		events = append(events, ev)
	}
	return events, nil
}

// valgrindHeadline classifies a report block's first line, or reports
// false for the banner/bookkeeping lines between blocks.
func valgrindHeadline(body string) (types.EventType, bool) {
	switch {
	case strings.HasPrefix(body, "Invalid read"),
		strings.HasPrefix(body, "Invalid write"),
		strings.HasPrefix(body, "Invalid free"),
		strings.Contains(body, "uninitialised value"),
		strings.Contains(body, "uninitialized value"):
		return types.EventTypeMemoryError, true
	case valgrindLeakRe.MatchString(body):
		return types.EventTypeMemoryLeak, true
	case strings.HasPrefix(body, "Possible data race"),
		strings.HasPrefix(body, "Lock order"),
		strings.Contains(body, "Thread #"):
		return types.EventTypeThreadError, true
	default:
		return types.EventTypeUnknown, false
	}
}
