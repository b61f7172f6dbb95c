// Package textutil holds helpers shared by the line-oriented text state
// machine decoders (pytest, Go test, gtest, RSpec, Mocha/Chai, JUnit text,
// Bazel, Maven, Gradle, CMake, Node). Context-stack tracking and
// multi-line block extraction are easy to duplicate per decoder file;
// this package factors them out once instead.
package textutil

import (
	"strconv"
	"strings"
)

// Lines splits content into its raw lines, preserving empty trailing
// entries the way strings.Split does; callers that need 1-based line
// numbers can index this slice with (lineNumber - 1).
func Lines(content string) []string {
	return strings.Split(content, "\n")
}

// AtoiOr parses s as a base-10 integer, returning fallback on failure.
// A malformed embedded number must never abort a decode; callers pass -1
// as the fallback for line/column fields so a failed parse reads as
// absent.
func AtoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

// AtoiOr32 is AtoiOr for int32-typed event fields.
func AtoiOr32(s string, fallback int32) int32 {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return int32(v)
}

// ParseFloatOr parses s as a float64, returning fallback on failure.
func ParseFloatOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}

// ContextStack tracks the enclosing suite/task/target names a text state
// machine decoder is currently inside, e.g. a Gradle task, a gtest suite,
// an RSpec describe block. Push/Pop/Current give decoders a single place
// to maintain that nesting instead of ad hoc local variables.
type ContextStack struct {
	frames []string
}

// Push enters a new enclosing context.
func (s *ContextStack) Push(name string) {
	s.frames = append(s.frames, name)
}

// Pop exits the innermost enclosing context. Popping an empty stack is a
// no-op: malformed nesting in the source text must not panic the decoder.
func (s *ContextStack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Current returns the innermost enclosing context, or "" if the stack is
// empty.
func (s *ContextStack) Current() string {
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1]
}

// Depth reports how many frames are pushed.
func (s *ContextStack) Depth() int {
	return len(s.frames)
}

// Block captures a multi-line construct (a test-failure block, a stack
// trace) as a single textual unit along with its 1-based line span;
// multi-line constructs use the entire block as the line span.
type Block struct {
	Text      string
	LineStart int
	LineEnd   int
}

// CollectBlock gathers lines[start:] (0-based, inclusive of start) until
// stop reports true for a line, or the slice is exhausted. The returned
// Block's LineStart/LineEnd are 1-based and inclusive, matching the
// ValidationEvent.LogLineStart/End convention. stop is never called with
// the start line itself, so a block is always at least one line long.
func CollectBlock(lines []string, start int, stop func(line string) bool) Block {
	end := start
	for i := start + 1; i < len(lines); i++ {
		if stop(lines[i]) {
			break
		}
		end = i
	}
	return Block{
		Text:      strings.Join(lines[start:end+1], "\n"),
		LineStart: start + 1,
		LineEnd:   end + 1,
	}
}
