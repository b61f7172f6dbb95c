package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// fileConfig is the optional YAML sidecar this CLI accepts via -config:
// a file provides defaults, explicit flags on the command line always
// win. Every field is a pointer so "absent from the file" and "zero
// value" stay distinct.
type fileConfig struct {
	Format            *string `yaml:"format"`
	SeverityThreshold *string `yaml:"severity_threshold"`
	IgnoreErrors      *bool   `yaml:"ignore_errors"`
	Content           *string `yaml:"content"`
	ContextLines      *int    `yaml:"context_lines"`
}

// loadFileConfig reads and parses a YAML config file. A missing path is
// not an error (the CLI runs config-free by default); a present-but-
// unreadable or malformed file is, since the caller asked for it by name.
func loadFileConfig(path string, log *logrus.Logger) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	log.WithField("path", path).Debug("loaded config file")
	return cfg, nil
}

// applyFileConfig overlays cfg onto flag values that were left at their
// registered flag.StringVar/BoolVar/IntVar default, i.e. never explicitly
// set on the command line. explicitlySet mirrors flag.Visit's notion of
// "the user touched this flag" so a file default never clobbers an
// explicit flag.
func applyFileConfig(cfg fileConfig, explicitlySet map[string]bool, format, severityThreshold, content *string, ignoreErrors *bool, contextLines *int) {
	if cfg.Format != nil && !explicitlySet["format"] {
		*format = *cfg.Format
	}
	if cfg.SeverityThreshold != nil && !explicitlySet["severity-threshold"] {
		*severityThreshold = *cfg.SeverityThreshold
	}
	if cfg.IgnoreErrors != nil && !explicitlySet["ignore-errors"] {
		*ignoreErrors = *cfg.IgnoreErrors
	}
	if cfg.Content != nil && !explicitlySet["content"] {
		*content = *cfg.Content
	}
	if cfg.ContextLines != nil && !explicitlySet["context-lines"] {
		*contextLines = *cfg.ContextLines
	}
}
