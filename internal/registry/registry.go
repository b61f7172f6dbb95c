// Package registry implements the parser registry: it owns parser
// instances, indexes them by format name, group, and category, and
// maintains a priority-sorted dispatch view used by auto-detection.
//
// Mutation (Register) is expected only at process/registry construction
// time; after that the registry is read-only and
// may be shared across concurrent scans without locking. A mutex still
// guards the rare case of a caller registering after first use.
package registry

import (
	"sort"
	"strings"
	"sync"

	"devlogscan/pkg/catalog"
	"devlogscan/pkg/parser"
)

// Registry owns a set of parsers and answers name, group, and
// content-sniffing lookups over them.
type Registry struct {
	mu sync.RWMutex

	byFormat map[string]parser.Parser
	order    []parser.Parser // registration order, for the stable tie-break
	sorted   []parser.Parser // priority-sorted view, recomputed on Register
}

// New returns an empty registry. Most callers want WithDefaults instead.
func New() *Registry {
	return &Registry{
		byFormat: make(map[string]parser.Parser),
	}
}

// Register adds parser p, indexed by its descriptor's canonical FormatName.
// Re-registering the same FormatName replaces the previous parser in place
// (idempotent on FormatName) without disturbing its position in
// registration order, so the stable tie-break still reflects first
// registration rather than the replacement.
func (r *Registry) Register(p parser.Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Descriptor().FormatName
	if _, exists := r.byFormat[name]; exists {
		r.byFormat[name] = p
		for i, existing := range r.order {
			if existing.Descriptor().FormatName == name {
				r.order[i] = p
				break
			}
		}
	} else {
		r.byFormat[name] = p
		r.order = append(r.order, p)
	}
	r.resortLocked()
}

// resortLocked recomputes the priority-sorted view. Callers must hold
// r.mu for writing. Recomputing on every Register (rather than lazily on
// first read after a change) keeps the cache write inside the same
// critical section as the mutation it follows from, so reads taken under
// RLock never need to write r.sorted themselves.
func (r *Registry) resortLocked() {
	sorted := make([]parser.Parser, len(r.order))
	copy(sorted, r.order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Descriptor().Priority > sorted[j].Descriptor().Priority
	})
	r.sorted = sorted
}

// GetByFormat resolves name (a canonical name or alias, case-insensitive)
// to its parser, or (nil, false) if none is registered.
func (r *Registry) GetByFormat(name string) (parser.Parser, bool) {
	canon := catalog.Canonicalize(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byFormat[canon]
	return p, ok
}

// HasFormat reports whether name (after alias resolution) is registered.
func (r *Registry) HasFormat(name string) bool {
	_, ok := r.GetByFormat(name)
	return ok
}

// IsGroup reports whether name is one of the stable group names from
// pkg/catalog. It does not check whether any parser actually belongs to
// the group: an empty group is still a recognized group, just an
// unproductive one, so dispatch yields zero events rather than an
// unknown-format error.
func (r *Registry) IsGroup(name string) bool {
	return catalog.IsGroup(name)
}

// ByGroup returns every parser that declares membership in group, sorted
// by descending priority with registration order breaking ties.
func (r *Registry) ByGroup(group string) []parser.Parser {
	key := strings.ToLower(strings.TrimSpace(group))

	r.mu.RLock()
	sortedView := r.sorted
	r.mu.RUnlock()

	var out []parser.Parser
	for _, p := range sortedView {
		for _, g := range p.Descriptor().Groups {
			if strings.ToLower(g) == key {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Find iterates parsers in descending priority order (registration order
// breaking ties) and returns the first whose CanParse reports true, or
// (nil, false) if none match. This is the registry-fallback half of
// auto-detection's registry phase.
func (r *Registry) Find(content string) (parser.Parser, bool) {
	r.mu.RLock()
	sortedView := r.sorted
	r.mu.RUnlock()

	for _, p := range sortedView {
		if p.CanParse(content) {
			return p, true
		}
	}
	return nil, false
}

// All returns every registered parser, priority-sorted.
func (r *Registry) All() []parser.Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]parser.Parser(nil), r.sorted...)
}
