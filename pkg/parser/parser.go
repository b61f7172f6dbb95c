// Package parser defines the contract every format decoder implements:
// a cheap content-sniffing predicate, a total deterministic decode function,
// and the metadata the registry (internal/registry) uses to index and rank
// it. Concrete decoders live under internal/parsers/...; this package only
// holds the shared interface and descriptor types so that decoders and the
// registry can depend on it without depending on each other.
package parser

import (
	"regexp"

	"devlogscan/pkg/types"
)

// Category classifies a decoder's domain.
type Category string

const (
	CategoryBuildSystem   Category = "build_system"
	CategoryTestFramework Category = "test_framework"
	CategoryLinter        Category = "linter"
	CategoryCI            Category = "ci"
	CategoryLogging       Category = "logging"
	CategoryNetwork       Category = "network"
	CategorySecurity      Category = "security"
	CategoryDebugger      Category = "debugger"
	CategorySpecialized   Category = "specialized"
)

// Descriptor carries a decoder's registry metadata: the fields the registry
// indexes and sorts on, none of which affect decode behavior.
type Descriptor struct {
	FormatName      string   // canonical name, matches pkg/catalog
	DisplayName     string
	Priority        int      // higher wins auto-detection
	Category        Category
	Groups          []string // e.g. "python", "test"; see pkg/catalog
	Aliases         []string
	// CommandPatterns is reserved for future command-based detection:
	// no component currently drives dispatch from it, but the decoder
	// contract keeps the field on every descriptor.
	CommandPatterns []*regexp.Regexp
	RequiresContext bool
}

// Parser is the contract every format decoder implements.
type Parser interface {
	// Descriptor returns the decoder's static registry metadata.
	Descriptor() Descriptor

	// CanParse is a cheap heuristic; callers pass it the full content, not
	// a truncated prefix. It must never panic and must return quickly even
	// on adversarial input.
	CanParse(content string) bool

	// Parse decodes content into events. It must be total: malformed
	// content degrades to an empty slice or a single summary event, never
	// a panic. Decoders that require a Context must still implement this
	// (e.g. by returning a MissingCapability-flavored summary event) so
	// that every Parser satisfies the interface uniformly; the richer
	// ParseWithContext path is what Context-requiring decoders actually
	// exercise.
	Parse(content string) ([]types.ValidationEvent, error)
}

// ContextParser is the optional richer contract for decoders that declare
// RequiresContext=true: they need a capability, such as an
// XML-to-JSON bridge, that the host environment supplies.
type ContextParser interface {
	Parser
	ParseWithContext(ctx *Context, content string) ([]types.ValidationEvent, error)
}

// Context is the capability bag threaded through ParseWithContext. It
// models host-service collaborators kept external to this library:
// today only an XML-to-JSON bridge, but the shape accommodates future
// capabilities without changing the Parser interface.
type Context struct {
	// XMLToJSON converts an XML document to its JSON projection. nil means
	// the capability is absent; decoders must fail with MissingCapability
	// rather than panic when it is nil and they need it.
	XMLToJSON func(xmlDoc string) (string, error)
}

// HasXMLBridge reports whether ctx carries a usable XML-to-JSON capability.
func (c *Context) HasXMLBridge() bool {
	return c != nil && c.XMLToJSON != nil
}
