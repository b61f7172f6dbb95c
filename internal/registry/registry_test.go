package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/pkg/parser"
	"devlogscan/pkg/types"
)

type stubParser struct {
	name     string
	priority int
	groups   []string
	hit      bool
}

func (s stubParser) Descriptor() parser.Descriptor {
	return parser.Descriptor{
		FormatName: s.name,
		Priority:   s.priority,
		Groups:     s.groups,
	}
}

func (s stubParser) CanParse(content string) bool { return s.hit }

func (s stubParser) Parse(content string) ([]types.ValidationEvent, error) {
	return nil, nil
}

func TestRegisterIsIdempotentOnFormatName(t *testing.T) {
	r := New()
	r.Register(stubParser{name: "foo", priority: 1})
	r.Register(stubParser{name: "foo", priority: 5})

	require.True(t, r.HasFormat("foo"))
	p, ok := r.GetByFormat("foo")
	require.True(t, ok)
	assert.Equal(t, 5, p.Descriptor().Priority)
	assert.Len(t, r.All(), 1)
}

func TestFindReturnsHighestPriorityMatch(t *testing.T) {
	r := New()
	r.Register(stubParser{name: "low", priority: 1, hit: true})
	r.Register(stubParser{name: "high", priority: 100, hit: true})

	p, ok := r.Find("anything")
	require.True(t, ok)
	assert.Equal(t, "high", p.Descriptor().FormatName)
}

func TestFindStableTieBreakIsRegistrationOrder(t *testing.T) {
	r := New()
	r.Register(stubParser{name: "first", priority: 10, hit: true})
	r.Register(stubParser{name: "second", priority: 10, hit: true})

	p, ok := r.Find("anything")
	require.True(t, ok)
	assert.Equal(t, "first", p.Descriptor().FormatName)
}

func TestFindNoMatch(t *testing.T) {
	r := New()
	r.Register(stubParser{name: "never", priority: 1, hit: false})

	_, ok := r.Find("anything")
	assert.False(t, ok)
}

func TestByGroupSortedByPriority(t *testing.T) {
	r := New()
	r.Register(stubParser{name: "a", priority: 1, groups: []string{"python"}})
	r.Register(stubParser{name: "b", priority: 50, groups: []string{"python"}})
	r.Register(stubParser{name: "c", priority: 10, groups: []string{"rust"}})

	members := r.ByGroup("python")
	require.Len(t, members, 2)
	assert.Equal(t, "b", members[0].Descriptor().FormatName)
	assert.Equal(t, "a", members[1].Descriptor().FormatName)
}

func TestWithDefaultsRegistersEveryShippedDecoder(t *testing.T) {
	r := WithDefaults()
	all := r.All()
	assert.NotEmpty(t, all)
	for _, ctor := range defaultConstructors() {
		name := ctor().Descriptor().FormatName
		assert.Truef(t, r.HasFormat(name), "default constructor %q missing from registry", name)
	}
}
