package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/pkg/types"
)

func TestGitHubActionsAnnotations(t *testing.T) {
	content := `##[group]Build
::error file=src/app.ts,line=10,col=5::Type error TS2345
::warning ::Deprecated API
::notice ::Done`

	require.True(t, GitHubActions{}.CanParse(content))
	events, err := GitHubActions{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 3)

	errAnn := events[0]
	assert.Equal(t, "src/app.ts", errAnn.RefFile)
	assert.Equal(t, int32(10), errAnn.RefLine)
	assert.Equal(t, int32(5), errAnn.RefColumn)
	assert.Equal(t, "Type error TS2345", errAnn.Message)
	assert.Equal(t, "Build", errAnn.Scope)
	assert.Equal(t, types.StatusFail, errAnn.Status)
	assert.Equal(t, "error", errAnn.Severity)

	assert.Equal(t, "warning", events[1].Severity)
	assert.Equal(t, types.StatusPass, events[2].Status)
	assert.Equal(t, "info", events[2].Severity)
}

func TestGitHubActionsGroupScopesFollowingAnnotations(t *testing.T) {
	content := `##[group]Lint
::warning ::first
##[group]Test
::error ::second`

	events, err := GitHubActions{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Lint", events[0].Scope)
	assert.Equal(t, "Test", events[1].Scope)
}

func TestGitHubActionsNoAnnotationsYieldSummary(t *testing.T) {
	events, err := GitHubActions{}.Parse("plain build output, no workflow commands")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.EventTypeSummary, events[0].EventType)
}
