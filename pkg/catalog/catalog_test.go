package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeResolvesAliases(t *testing.T) {
	cases := map[string]string{
		"pytest":     PytestText,
		"PYTEST":     PytestText,
		" junit ":    JUnitXML,
		"gdb":        GDBLLDB,
		"cloudtrail": AWSCloudTrail,
	}
	for alias, want := range cases {
		assert.Equal(t, want, Canonicalize(alias), alias)
	}
}

func TestCanonicalizePassesThroughCanonicalAndUnknownNames(t *testing.T) {
	assert.Equal(t, Strace, Canonicalize(Strace))
	assert.Equal(t, "not_a_format", Canonicalize("Not_A_Format"))
}

func TestIsGroup(t *testing.T) {
	for _, g := range AllGroups {
		assert.True(t, IsGroup(g), g)
	}
	assert.True(t, IsGroup("Python"))
	assert.False(t, IsGroup("pytest_text"))
	assert.False(t, IsGroup(""))
}
