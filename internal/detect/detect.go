// Package detect implements auto-detection: resolving `format =
// auto` to a concrete format name from content alone.
//
// Detection runs in two phases that never both fire for the
// same content: a small ordered table of tight, historically-stable
// fingerprints is tried first; only when none match does the registry's
// general, priority-ordered CanParse sweep take over. This preserves
// classification parity for formats whose content overlaps (RSpec vs.
// Mocha/Chai both use tick/cross glyphs; Go test text vs. gtest text
// both use "RUN"/"PASS" banners) by letting the legacy table break ties
// the registry's generic sweep would get wrong.
package detect

import (
	"strings"

	"devlogscan/internal/registry"
	"devlogscan/pkg/catalog"
)

// heuristic is one entry in the legacy fingerprint table: if Match
// reports true against a scan's full content, Format is returned without
// ever consulting the registry.
type heuristic struct {
	Format string
	Match  func(content string) bool
}

// legacyTable is consulted top-to-bottom; the first matching entry wins.
// Order matters: more specific fingerprints are listed before more
// general ones that could also match the same content (e.g. pytest-cov's
// banner implies pytest-text's result-line shape is also present).
var legacyTable = []heuristic{
	{
		Format: catalog.PytestCovText,
		Match: func(c string) bool {
			return strings.Contains(c, "coverage:") && strings.Contains(c, "Stmts")
		},
	},
	{
		Format: catalog.GoTestText,
		Match: func(c string) bool {
			return strings.Contains(c, "=== RUN") && strings.Contains(c, "--- PASS:")
		},
	},
	{
		Format: catalog.GTestText,
		Match: func(c string) bool {
			return strings.Contains(c, "[==========]") && strings.Contains(c, "[ RUN      ]")
		},
	},
	{
		Format: catalog.Valgrind,
		Match: func(c string) bool {
			if strings.Contains(c, "==") {
				for _, tool := range []string{"Memcheck", "Helgrind", "Cachegrind", "Massif", "DRD"} {
					if strings.Contains(c, tool) {
						return true
					}
				}
			}
			return strings.Contains(c, "Invalid read") || strings.Contains(c, "Invalid write") ||
				(strings.Contains(c, "definitely lost") && strings.Contains(c, "bytes")) ||
				(strings.Contains(c, "Possible data race") && strings.Contains(c, "thread"))
		},
	},
	{
		Format: catalog.GDBLLDB,
		Match: func(c string) bool {
			return strings.Contains(c, "GNU gdb") || strings.Contains(c, "(gdb)") ||
				strings.Contains(c, "(lldb)") ||
				(strings.Contains(c, "Program received signal") && strings.Contains(c, "Segmentation fault")) ||
				(strings.Contains(c, "Reading symbols from") && strings.Contains(c, "Starting program:"))
		},
	},
	{
		Format: catalog.RSpecText,
		Match: func(c string) bool {
			return strings.Contains(c, ".rb:") && strings.Contains(c, "examples")
		},
	},
	{
		Format: catalog.MochaChaiText,
		Match: func(c string) bool {
			return strings.Contains(c, ".js") && strings.Contains(c, "passing")
		},
	},
	{
		Format: catalog.JUnitXML,
		Match: func(c string) bool {
			t := strings.TrimSpace(c)
			return strings.HasPrefix(t, "<") &&
				(strings.Contains(t, "<testsuite") || strings.Contains(t, "<testsuites"))
		},
	},
	{
		Format: catalog.Bazel,
		Match: func(c string) bool {
			for _, prefix := range []string{"PASSED:", "FAILED:", "TIMEOUT:", "FLAKY:"} {
				if strings.Contains(c, prefix) {
					return true
				}
			}
			return false
		},
	},
	{
		Format: catalog.Strace,
		Match: func(c string) bool {
			return strings.Contains(c, "+++ exited with") || strings.Contains(c, "<0.")
		},
	},
}

// Detect resolves content to a canonical format name using the two-phase
// algorithm: legacy table first, registry Find as fallback. It returns
// ("", false) when neither phase recognizes the content.
func Detect(reg *registry.Registry, content string) (string, bool) {
	for _, h := range legacyTable {
		if h.Match(content) {
			return h.Format, true
		}
	}

	if p, ok := reg.Find(content); ok {
		return p.Descriptor().FormatName, true
	}
	return "", false
}
