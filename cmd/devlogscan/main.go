// Command devlogscan is a standalone driver that exercises the full
// devlogscan pipeline end to end, standing in for the host query engine's
// bind/init-global/init-local/chunk-pull cycle so the library
// can be exercised without a SQL engine attached.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"devlogscan/internal/bind"
	"devlogscan/internal/emitter"
	"devlogscan/internal/engine"
	"devlogscan/internal/registry"
	"devlogscan/internal/xmlbridge"
)

const defaultVectorSize = 2048

func main() {
	var (
		format            string
		severityThreshold string
		ignoreErrors      bool
		content           string
		contextLines      int
		inline            bool
		verbose           bool
		configPath        string
	)

	flag.StringVar(&format, "format", "auto", "format name, alias, group, or regexp:<pattern>")
	flag.StringVar(&severityThreshold, "severity-threshold", "debug", "minimum severity level to emit")
	flag.BoolVar(&ignoreErrors, "ignore-errors", false, "swallow per-file decoder errors in multi-file mode")
	flag.StringVar(&content, "content", "full", "log_content shaping: full|none|smart|<limit>")
	flag.IntVar(&contextLines, "context-lines", 0, "emit N lines of source context around each event")
	flag.BoolVar(&inline, "inline", false, "treat the source argument as literal content, not a path/glob")
	flag.BoolVar(&verbose, "verbose", false, "log at debug level")
	flag.StringVar(&configPath, "config", "", "optional YAML file of default scan options, overridden by explicit flags")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: devlogscan [flags] <source-or-content>")
		os.Exit(2)
	}

	fileCfg, err := loadFileConfig(configPath, log)
	if err != nil {
		log.WithError(err).Fatal("invalid config file")
	}
	explicitlySet := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicitlySet[f.Name] = true })
	applyFileConfig(fileCfg, explicitlySet, &format, &severityThreshold, &content, &ignoreErrors, &contextLines)

	opts, err := bind.Validate(bind.RawArgs{
		Source:            flag.Arg(0),
		Format:            format,
		SeverityThreshold: severityThreshold,
		IgnoreErrors:      ignoreErrors,
		Content:           content,
		ContextLines:      contextLines,
		Inline:            inline,
	})
	if err != nil {
		log.WithError(err).Fatal("invalid arguments")
	}

	reg := registry.WithDefaults()
	xmlCtx := engine.BuildContext(xmlbridge.XMLToJSON)
	eng := engine.New(reg, log, xmlCtx)

	scan, err := eng.Run(opts)
	if err != nil {
		log.WithError(err).Fatal("scan failed")
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		rows := scan.Emitter.Pull(defaultVectorSize)
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			if err := enc.Encode(rowToMap(row)); err != nil {
				log.WithError(err).Fatal("failed to encode row")
			}
		}
	}
}

// rowToMap projects one emitter.Row into a JSON-friendly map: pointer
// fields that are nil are omitted entirely rather than encoded as JSON
// null, so stdout reads closer to the NULL-aware relation the emitter
// projects.
func rowToMap(row emitter.Row) map[string]interface{} {
	m := map[string]interface{}{
		"event_id":   row.EventID,
		"event_type": row.EventType,
	}
	putStr(m, "tool_name", row.ToolName)
	putStr(m, "ref_file", row.RefFile)
	putInt32(m, "ref_line", row.RefLine)
	putInt32(m, "ref_column", row.RefColumn)
	putStr(m, "function_name", row.FunctionName)
	putStr(m, "status", row.Status)
	putStr(m, "severity", row.Severity)
	putStr(m, "category", row.Category)
	putStr(m, "error_code", row.ErrorCode)
	putStr(m, "message", row.Message)
	putStr(m, "suggestion", row.Suggestion)
	putStr(m, "log_content", row.LogContent)
	putStr(m, "structured_data", row.StructuredData)
	putInt32(m, "log_line_start", row.LogLineStart)
	putInt32(m, "log_line_end", row.LogLineEnd)
	putStr(m, "log_file", row.LogFile)
	putStr(m, "test_name", row.TestName)
	putFloat(m, "execution_time", row.ExecutionTime)
	putStr(m, "principal", row.Principal)
	putStr(m, "origin", row.Origin)
	putStr(m, "target", row.Target)
	putStr(m, "actor_type", row.ActorType)
	putStr(m, "started_at", row.StartedAt)
	putStr(m, "external_id", row.ExternalID)
	putStr(m, "scope", row.Scope)
	putStr(m, "scope_id", row.ScopeID)
	putStr(m, "scope_status", row.ScopeStatus)
	putStr(m, "group", row.Group)
	putStr(m, "group_id", row.GroupID)
	putStr(m, "group_status", row.GroupStatus)
	putStr(m, "unit", row.Unit)
	putStr(m, "unit_id", row.UnitID)
	putStr(m, "unit_status", row.UnitStatus)
	putStr(m, "subunit", row.Subunit)
	putStr(m, "subunit_id", row.SubunitID)
	putStr(m, "fingerprint", row.Fingerprint)
	putFloat(m, "similarity_score", row.SimilarityScore)
	putInt64(m, "pattern_id", row.PatternID)
	if len(row.Context) > 0 {
		m["context"] = row.Context
	}
	return m
}

func putStr(m map[string]interface{}, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putInt32(m map[string]interface{}, key string, v *int32) {
	if v != nil {
		m[key] = *v
	}
}

func putInt64(m map[string]interface{}, key string, v *int64) {
	if v != nil {
		m[key] = *v
	}
}

func putFloat(m map[string]interface{}, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}
