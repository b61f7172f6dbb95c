// Package engine orchestrates a full scan: source expansion, format
// dispatch (named/group/regexp/auto), fingerprint clustering, severity
// filtering, and handing the result to the chunked emitter. It is the
// `init-global` + `init-local` half of the bind/init/chunk-pull cycle;
// cmd/devlogscan drives it the way a host query engine would.
package engine

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"devlogscan/internal/bind"
	"devlogscan/internal/detect"
	"devlogscan/internal/emitter"
	"devlogscan/internal/fingerprint"
	"devlogscan/internal/genericdecoder"
	"devlogscan/internal/registry"
	"devlogscan/internal/scanmetrics"
	"devlogscan/internal/severity"
	"devlogscan/internal/source"
	"devlogscan/pkg/parser"
	"devlogscan/pkg/scanerr"
	"devlogscan/pkg/types"
)

// Scan is a single table-function invocation's full materialized result:
// everything init-global computes before the first chunk pull.
type Scan struct {
	Emitter *emitter.Emitter
}

// Engine drives scans against a shared, read-only parser registry. The
// registry may be shared lock-free across concurrent scans once built;
// Engine carries no other mutable state of its own.
type Engine struct {
	reg    *registry.Registry
	log    *logrus.Logger
	xmlCtx *parser.Context
}

// New builds an Engine over reg, logging through log (never the global
// logrus logger, matching this module's injected-logger discipline).
// xmlCtx supplies the XML-to-JSON capability for context-requiring
// decoders; pass nil to run without XML support.
func New(reg *registry.Registry, log *logrus.Logger, xmlCtx *parser.Context) *Engine {
	return &Engine{reg: reg, log: log, xmlCtx: xmlCtx}
}

// Run executes init-global for one scan: resolving the source, parsing,
// clustering, filtering, and building the Emitter the caller then pulls
// chunks from.
func (e *Engine) Run(opts types.ScanOptions) (*Scan, error) {
	start := time.Now()

	path, err := bind.Resolve(e.reg, opts.Format)
	if err != nil {
		return nil, err
	}

	events, buffers, err := e.collect(opts, path)
	if err != nil {
		return nil, err
	}

	events = severity.Filter(events, opts.SeverityThreshold)
	fingerprint.Cluster(events)

	scanmetrics.ScansTotal.WithLabelValues(path.Kind.String()).Inc()
	scanmetrics.EventsEmitted.Add(float64(len(events)))
	scanmetrics.ScanDuration.Observe(time.Since(start).Seconds())
	e.log.WithFields(logrus.Fields{
		"source": opts.Source,
		"format": opts.Format,
		"path":   path.Kind.String(),
		"events": len(events),
	}).Info("scan materialized")

	return &Scan{Emitter: emitter.New(events, opts.Content, opts.ContextLines, buffers)}, nil
}

// collect resolves opts.Source to content (inline or via C10 file
// expansion) and decodes it along the dispatch path bind.Resolve chose.
// When the scan requests the context column it also returns the per-file
// line buffers the emitter windows over; inline content is keyed by the
// empty LogFile its events carry.
func (e *Engine) collect(opts types.ScanOptions, path bind.Path) ([]types.ValidationEvent, map[string][]string, error) {
	inline := func(content string) ([]types.ValidationEvent, map[string][]string, error) {
		events, err := e.decodeContent(content, path)
		if err != nil {
			return nil, nil, err
		}
		var buffers map[string][]string
		if opts.ContextLines > 0 {
			buffers = map[string][]string{"": strings.Split(content, "\n")}
		}
		return events, buffers, nil
	}

	if opts.Inline {
		return inline(opts.Source)
	}

	files, err := source.Expand(opts.Source)
	if err != nil {
		// expand() signals "nothing on disk matched" by failing with
		// NotFound (an IOError). Zero files means source is treated as
		// inline content, so that failure is exactly the zero-files
		// case, not a scan-aborting error.
		if scanerr.IsIO(err) {
			return inline(opts.Source)
		}
		return nil, nil, err
	}
	if len(files) == 0 {
		return inline(opts.Source)
	}
	if len(files) == 1 && files[0] == opts.Source {
		// Single-file mode: a read failure on the one named file surfaces
		// as an IOError instead of being skipped the way ProcessMulti
		// skips it per file.
		f, err := os.Open(opts.Source)
		if err != nil {
			return nil, nil, scanerr.IO("engine.collect", "cannot read "+opts.Source).Wrap(err)
		}
		f.Close()
	}

	var buffers map[string][]string
	if opts.ContextLines > 0 {
		buffers = make(map[string][]string, len(files))
	}
	events, err := source.ProcessMulti(files, opts.IgnoreErrors, func(file, content string) ([]types.ValidationEvent, error) {
		if buffers != nil {
			buffers[file] = strings.Split(content, "\n")
		}
		return e.decodeContent(content, path)
	})
	return events, buffers, err
}

// decodeContent runs one blob of content through the dispatch path,
// never touching the filesystem itself.
func (e *Engine) decodeContent(content string, path bind.Path) ([]types.ValidationEvent, error) {
	switch path.Kind {
	case bind.PathFormat:
		p, ok := e.reg.GetByFormat(path.FormatName)
		if !ok {
			return nil, scanerr.Decoder("engine.decode", "format not registered: "+path.FormatName)
		}
		return e.runParser(p, content)

	case bind.PathGroup:
		return e.runGroup(path.GroupName, content)

	case bind.PathRegexp:
		re, err := genericdecoder.Compile(path.Pattern)
		if err != nil {
			return nil, err
		}
		return genericdecoder.Parse(re, content)

	default:
		formatName, ok := detect.Detect(e.reg, content)
		if !ok {
			ev := types.NewEvent("unknown", types.EventTypeUnknown)
			ev.Category = "unknown"
			ev.Message = "no decoder recognized this content"
			return []types.ValidationEvent{ev}, nil
		}
		p, _ := e.reg.GetByFormat(formatName)
		return e.runParser(p, content)
	}
}

// runGroup implements group dispatch: the first parser (by
// descending priority) whose CanParse succeeds AND whose Parse yields at
// least one event wins; later parsers in the group are not attempted.
func (e *Engine) runGroup(group string, content string) ([]types.ValidationEvent, error) {
	for _, p := range e.reg.ByGroup(group) {
		if !p.CanParse(content) {
			continue
		}
		events, err := e.runParser(p, content)
		if err != nil {
			return nil, err
		}
		if len(events) > 0 {
			return events, nil
		}
	}
	return nil, nil
}

func (e *Engine) runParser(p parser.Parser, content string) ([]types.ValidationEvent, error) {
	if cp, ok := p.(parser.ContextParser); ok && p.Descriptor().RequiresContext {
		return cp.ParseWithContext(e.xmlCtx, content)
	}
	return p.Parse(content)
}

// BuildContext returns a parser.Context wired to a default XML-to-JSON
// bridge function, or nil when bridgeFn is nil (modeling "no XML
// facility available", which MissingCapability decoders report as a
// clean failure).
func BuildContext(bridgeFn func(string) (string, error)) *parser.Context {
	if bridgeFn == nil {
		return nil
	}
	return &parser.Context{XMLToJSON: bridgeFn}
}

// ShapeContentMode is a thin re-export so callers building ScanOptions
// by hand (e.g. cmd/devlogscan) don't need a second import of the
// shaper/types split just to parse a content-mode string.
func ShapeContentMode(raw string) (types.ContentMode, bool) {
	return types.ParseContentMode(raw)
}
