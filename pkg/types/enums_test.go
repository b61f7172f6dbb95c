package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityLevelsAreOrdered(t *testing.T) {
	assert.True(t, SeverityDebug < SeverityInfo)
	assert.True(t, SeverityInfo < SeverityWarning)
	assert.True(t, SeverityWarning < SeverityError)
	assert.True(t, SeverityError < SeverityCritical)
}

func TestParseSeverityLevelUnknownsMapToInfo(t *testing.T) {
	cases := map[string]SeverityLevel{
		"debug":    SeverityDebug,
		"WARN":     SeverityWarning,
		"fatal":    SeverityCritical,
		"failed":   SeverityError,
		"":         SeverityInfo,
		"verbose?": SeverityInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseSeverityLevel(in), in)
	}
}

func TestParseContentMode(t *testing.T) {
	m, ok := ParseContentMode("full")
	require.True(t, ok)
	assert.Equal(t, ContentFull, m.Kind)

	m, ok = ParseContentMode("100")
	require.True(t, ok)
	assert.Equal(t, ContentLimit, m.Kind)
	assert.Equal(t, 100, m.Limit)

	m, ok = ParseContentMode("0")
	require.True(t, ok)
	assert.Equal(t, ContentNone, m.Kind)

	m, ok = ParseContentMode("-5")
	require.True(t, ok)
	assert.Equal(t, ContentNone, m.Kind)

	m, ok = ParseContentMode("smart")
	require.True(t, ok)
	assert.Equal(t, ContentSmart, m.Kind)

	_, ok = ParseContentMode("sideways")
	assert.False(t, ok)
}

func TestNewEventSetsAbsentSentinels(t *testing.T) {
	ev := NewEvent("pytest", EventTypeTestResult)
	assert.Equal(t, int32(-1), ev.RefLine)
	assert.Equal(t, int32(-1), ev.RefColumn)
	assert.Equal(t, int32(-1), ev.LogLineStart)
	assert.Equal(t, int32(-1), ev.LogLineEnd)
	assert.Equal(t, int64(-1), ev.PatternID)
	assert.False(t, ev.HasLineSpan())

	ev.LogLineStart, ev.LogLineEnd = 3, 5
	assert.True(t, ev.HasLineSpan())
}
