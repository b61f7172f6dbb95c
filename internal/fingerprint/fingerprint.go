// Package fingerprint implements the fingerprint/cluster engine: it
// normalizes an event's message into a shape-only form, derives a
// deterministic fingerprint from it, and assigns dense per-scan pattern
// IDs to events that normalize identically so downstream consumers can
// deduplicate near-identical findings.
package fingerprint

import (
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"

	"devlogscan/pkg/types"
)

// precheckChars are the characters whose presence in a message implies
// the normalization regexes could possibly match something. A message
// containing none of them is already in its most-normalized form, so the
// full regex pipeline can be skipped.
const precheckChars = "/\\:'\"\t\n0123456789"

// ordered normalization steps, applied in this exact sequence because
// later patterns intentionally match placeholders earlier ones leave
// behind (e.g. the `<num>` catch-all must run after line/column and hex
// substitutions have already claimed their digits).
var (
	fileExtPathRe  = mustCompile(`(?:[\w.-]+[/\\])*[\w-]+\.[A-Za-z][A-Za-z0-9]{0,6}\b`)
	unixPathRe     = mustCompile(`/[\w.-]+(?:/[\w.-]+)+/?`)
	windowsPathRe  = mustCompile(`[A-Za-z]:\\[\w.\\-]+`)
	isoDatetimeRe  = mustCompile(`\d{4}-\d{2}-\d{2}[t ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:z|[+-]\d{2}:?\d{2})?`)
	bareTimeRe     = mustCompile(`\b\d{2}:\d{2}:\d{2}\b`)
	lineColRe      = mustCompile(`:\d+:\d+:`)
	lineNRe        = mustCompile(`\bline \d+\b`)
	columnNRe      = mustCompile(`\bcolumn \d+\b`)
	hexAddrRe      = mustCompile(`\b0x[0-9a-f]+\b`)
	longIntRe      = mustCompile(`\b\d{6,}\b`)
	singleQuotedRe = mustCompile(`'[^']*'`)
	doubleQuotedRe = mustCompile(`"[^"]*"`)
	decimalRe      = mustCompile(`\b\d+\.\d+\b`)
	intRe          = mustCompile(`\b\d+\b`)
	whitespaceRe   = mustCompile(`\s+`)
)

// domainKeywords is the closed set of similarity bonus keywords.
var domainKeywords = []string{"error", "warning", "failed", "exception", "timeout", "permission", "not found"}

// Normalize reduces message to a shape-only form: lower-cased, with
// paths, timestamps, positions, addresses, identifiers, and numbers
// replaced by fixed placeholders, and whitespace collapsed. Two messages
// that differ only in incidental detail (which file, which line, which
// literal value) normalize to the same string.
func Normalize(message string) string {
	lower := strings.ToLower(message)
	if !strings.ContainsAny(lower, precheckChars) {
		return strings.TrimSpace(whitespaceRe.ReplaceAllString(lower, " "))
	}

	s := lower
	s = fileExtPathRe.ReplaceAllString(s, " <file> ")
	s = unixPathRe.ReplaceAllString(s, "/<path>/")
	s = windowsPathRe.ReplaceAllString(s, `\<path>\`)
	s = isoDatetimeRe.ReplaceAllString(s, "<timestamp>")
	s = bareTimeRe.ReplaceAllString(s, "<time>")
	s = lineColRe.ReplaceAllString(s, ":<line>:<col>:")
	s = lineNRe.ReplaceAllString(s, "line <num>")
	s = columnNRe.ReplaceAllString(s, "column <num>")
	s = hexAddrRe.ReplaceAllString(s, "<addr>")
	s = longIntRe.ReplaceAllString(s, "<id>")
	s = singleQuotedRe.ReplaceAllString(s, "'<var>'")
	s = doubleQuotedRe.ReplaceAllString(s, `"<var>"`)
	s = decimalRe.ReplaceAllString(s, "<decimal>")
	s = intRe.ReplaceAllString(s, "<num>")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fingerprint derives the deterministic clustering key for an event:
// tool_name + "_" + category + "_" + hex(xxhash(tool:category:normalized)).
// The hash function's only contract is process-local determinism; its
// numeric value is never compared across runs, only the resulting string
// is compared for equality during clustering.
func Fingerprint(tool, category, normalized string) string {
	payload := tool + ":" + category + ":" + normalized
	sum := xxhash.Sum64String(payload)
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(sum >> (56 - 8*i))
	}
	return tool + "_" + category + "_" + hex.EncodeToString(buf[:])
}

// Cluster assigns Fingerprint, PatternID, and SimilarityScore to every
// event in a single left-to-right pass. The first event to produce a
// given fingerprint becomes that pattern's representative (by its
// original, un-normalized message); later events sharing the fingerprint
// inherit the same dense, 1-based pattern_id and are scored against the
// representative.
func Cluster(events []types.ValidationEvent) {
	nextPattern := int64(1)
	patternOf := make(map[string]int64)
	representative := make(map[string]string)

	for i := range events {
		ev := &events[i]
		normalized := Normalize(ev.Message)
		fp := Fingerprint(ev.ToolName, ev.Category, normalized)
		ev.Fingerprint = fp

		id, seen := patternOf[fp]
		if !seen {
			id = nextPattern
			nextPattern++
			patternOf[fp] = id
			representative[fp] = ev.Message
			ev.PatternID = id
			ev.SimilarityScore = 1.0
			continue
		}

		ev.PatternID = id
		ev.SimilarityScore = Similarity(normalized, Normalize(representative[fp]))
	}
}

// Similarity scores a normalized message against a representative's
// normalized message: a position-wise matching-prefix ratio plus a
// bonus for shared domain keywords, clamped to 1.0. This is a coarse
// hint, not a true edit-distance measure, by design.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	matched := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			break
		}
		matched++
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	score := float64(matched) / float64(maxLen)

	bonus := 0
	for _, kw := range domainKeywords {
		if strings.Contains(a, kw) && strings.Contains(b, kw) {
			bonus++
		}
	}
	score += 0.1 * float64(bonus)

	if score > 1.0 {
		score = 1.0
	}
	return score
}
