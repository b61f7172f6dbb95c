package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/internal/registry"
	"devlogscan/pkg/types"
)

func TestValidateAppliesDefaults(t *testing.T) {
	opts, err := Validate(RawArgs{Source: "some.log"})
	require.NoError(t, err)
	assert.Equal(t, "auto", opts.Format)
	assert.Equal(t, types.SeverityDebug, opts.SeverityThreshold)
	assert.False(t, opts.IgnoreErrors)
	assert.Equal(t, types.ContentMode{Kind: types.ContentFull}, opts.Content)
}

func TestValidateRejectsBadSeverityThreshold(t *testing.T) {
	_, err := Validate(RawArgs{Source: "x", SeverityThreshold: "not-a-level"})
	require.Error(t, err)
}

func TestValidateRejectsBadContentMode(t *testing.T) {
	_, err := Validate(RawArgs{Source: "x", Content: "not-a-mode"})
	require.Error(t, err)
}

func TestValidateAcceptsIntegerContentLimit(t *testing.T) {
	opts, err := Validate(RawArgs{Source: "x", Content: "500"})
	require.NoError(t, err)
	assert.Equal(t, types.ContentMode{Kind: types.ContentLimit, Limit: 500}, opts.Content)
}

func TestValidateRequiresSourceUnlessInline(t *testing.T) {
	_, err := Validate(RawArgs{})
	require.Error(t, err)

	_, err = Validate(RawArgs{Inline: true})
	require.NoError(t, err)
}

func TestResolveAuto(t *testing.T) {
	reg := registry.New()
	path, err := Resolve(reg, "")
	require.NoError(t, err)
	assert.Equal(t, PathAuto, path.Kind)

	path, err = Resolve(reg, "AUTO")
	require.NoError(t, err)
	assert.Equal(t, PathAuto, path.Kind)
}

func TestResolveRegexpRequiresPattern(t *testing.T) {
	reg := registry.New()
	_, err := Resolve(reg, "regexp:")
	assert.Error(t, err)

	path, err := Resolve(reg, "regexp:^(?P<message>.*)$")
	require.NoError(t, err)
	assert.Equal(t, PathRegexp, path.Kind)
}

func TestResolveNamedFormat(t *testing.T) {
	reg := registry.WithDefaults()
	path, err := Resolve(reg, "pytest")
	require.NoError(t, err)
	assert.Equal(t, PathFormat, path.Kind)
	assert.Equal(t, "pytest_text", path.FormatName)
}

func TestResolveGroup(t *testing.T) {
	reg := registry.WithDefaults()
	path, err := Resolve(reg, "python")
	require.NoError(t, err)
	assert.Equal(t, PathGroup, path.Kind)
}

func TestResolveRejectsUnknownFormat(t *testing.T) {
	reg := registry.WithDefaults()
	_, err := Resolve(reg, "not_a_real_format")
	assert.Error(t, err)
}
