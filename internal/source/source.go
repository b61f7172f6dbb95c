// Package source implements the source expander: resolving a
// scan's `source` argument to a concrete file list, and driving
// per-file parsing with the configured error tolerance.
package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"devlogscan/internal/scanmetrics"
	"devlogscan/pkg/scanerr"
	"devlogscan/pkg/types"
)

// commonLogGlobs are tried, in order, when source names a directory
// (i.e. ends with a path separator) rather than a file or an explicit
// glob pattern.
var commonLogGlobs = []string{"*.xml", "*.json", "*.txt", "*.log", "*.out"}

// Expand resolves source to the list of files a scan should read: a
// plain file resolves to itself; a glob pattern expands via
// doublestar; a directory (source ending in a path separator) tries the
// common test-output globs underneath it. An empty result is not an
// error here; the caller (bind/engine) treats zero files as a signal
// to fall back to treating source itself as inline content.
func Expand(source string) ([]string, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return []string{source}, nil
	}

	// Only treat source as a glob when it carries actual glob
	// metacharacters. FilepathGlob on a meta-free string is a literal
	// existence check, and an existing directory path without a
	// trailing separator would "match" itself here instead of falling
	// through to the NotFound that triggers the inline-content fallback.
	if strings.ContainsAny(source, "*?[{") {
		if matches, err := doublestar.FilepathGlob(source); err == nil && len(matches) > 0 {
			return matches, nil
		}
	}

	if len(source) > 0 && os.IsPathSeparator(source[len(source)-1]) {
		var found []string
		for _, pattern := range commonLogGlobs {
			matches, err := doublestar.FilepathGlob(filepath.Join(source, pattern))
			if err != nil {
				continue
			}
			found = append(found, matches...)
		}
		return found, nil
	}

	return nil, scanerr.IO("source.expand", "source not found: "+source)
}

// ProcessMulti parses every file in files independently using decode,
// tolerating per-file failure: an IOError reading any single
// file is always skipped; any other decoder error is skipped when
// ignoreErrors is true and re-raised (aborting the whole scan)
// otherwise. The callback receives the file path alongside its content
// so callers can keep per-file state (e.g. the context-column line
// buffers). Every successfully decoded event has its source file path
// stamped into LogFile.
func ProcessMulti(files []string, ignoreErrors bool, decode func(file, content string) ([]types.ValidationEvent, error)) ([]types.ValidationEvent, error) {
	var all []types.ValidationEvent
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}

		events, err := decode(file, string(data))
		if err != nil {
			if ignoreErrors || scanerr.IsIO(err) {
				scanmetrics.DecodeErrors.WithLabelValues("swallowed").Inc()
				continue
			}
			scanmetrics.DecodeErrors.WithLabelValues("raised").Inc()
			return nil, scanerr.Decoder("source.process_multi", "decode failed for "+file).Wrap(err)
		}

		for i := range events {
			if events[i].LogFile == "" {
				events[i].LogFile = file
			}
		}
		all = append(all, events...)
	}
	return all, nil
}
