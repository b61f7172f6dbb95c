package shaper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"devlogscan/pkg/types"
)

func TestShapeFull(t *testing.T) {
	assert.Equal(t, "hello", Shape("hello", types.ContentMode{Kind: types.ContentFull}, -1, -1))
}

func TestShapeNone(t *testing.T) {
	assert.Equal(t, "", Shape("hello", types.ContentMode{Kind: types.ContentNone}, -1, -1))
}

func TestShapeLimitShortContentPassesThrough(t *testing.T) {
	mode := types.ContentMode{Kind: types.ContentLimit, Limit: 100}
	assert.Equal(t, "short", Shape("short", mode, -1, -1))
}

func TestShapeLimitTruncatesAndAppendsEllipsis(t *testing.T) {
	mode := types.ContentMode{Kind: types.ContentLimit, Limit: 5}
	assert.Equal(t, "hello...", Shape("hello world", mode, -1, -1))
}

func TestShapeFullThenLimitEqualsDirectLimit(t *testing.T) {
	content := "the quick brown fox jumps over the lazy dog"
	full := Shape(content, types.ContentMode{Kind: types.ContentFull}, -1, -1)
	viaFull := shapeLimit(full, 10)
	direct := Shape(content, types.ContentMode{Kind: types.ContentLimit, Limit: 10}, -1, -1)
	assert.Equal(t, viaFull, direct)
}

// TestShapeSmartWindow: L1..L7, event at line 4, window
// [start-2..end+2] = [2..6], with both "..." markers present because both
// ends of the buffer are truncated.
func TestShapeSmartWindow(t *testing.T) {
	content := strings.Join([]string{"L1", "L2", "L3", "L4", "L5", "L6", "L7"}, "\n")
	mode := types.ContentMode{Kind: types.ContentSmart, Limit: 100}
	got := Shape(content, mode, 4, 4)

	assert.True(t, strings.HasPrefix(got, "...\n"))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "L2")
	assert.Contains(t, got, "L6")
	assert.NotContains(t, got, "L1\n")
	assert.NotContains(t, got, "\nL7")
}

func TestShapeSmartNoLineInfoFallsBackToLimit(t *testing.T) {
	content := strings.Repeat("x", 20)
	mode := types.ContentMode{Kind: types.ContentSmart, Limit: 5}
	got := Shape(content, mode, -1, -1)
	assert.Equal(t, shapeLimit(content, 5), got)
}

func TestContextWindowClampsToBuffer(t *testing.T) {
	buf := []string{"a", "b", "c", "d", "e"}
	lines := ContextWindow(buf, 1, 1, 2)
	if assert.Len(t, lines, 3) {
		assert.Equal(t, 1, lines[0].LineNumber)
		assert.True(t, lines[0].IsEvent)
		assert.False(t, lines[2].IsEvent)
	}
}

func TestContextWindowAbsentBufferOrRangeIsNil(t *testing.T) {
	assert.Nil(t, ContextWindow(nil, 1, 1, 2))
	assert.Nil(t, ContextWindow([]string{"a"}, -1, -1, 2))
}
