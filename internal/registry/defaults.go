package registry

import (
	"devlogscan/internal/parsers/buildsystems"
	"devlogscan/internal/parsers/ci"
	"devlogscan/internal/parsers/debuggers"
	"devlogscan/internal/parsers/linters"
	"devlogscan/internal/parsers/logging"
	"devlogscan/internal/parsers/network"
	"devlogscan/internal/parsers/security"
	"devlogscan/internal/parsers/specialized"
	"devlogscan/internal/parsers/testframeworks"
	"devlogscan/pkg/parser"
)

// WithDefaults returns a registry pre-populated with every concrete
// decoder this module ships, in the order listed below. Registration
// order only matters as the stable tie-break between two decoders of
// identical priority; the effective dispatch order is priority-sorted
// (see resortLocked).
func WithDefaults() *Registry {
	r := New()
	for _, ctor := range defaultConstructors() {
		r.Register(ctor())
	}
	return r
}

func defaultConstructors() []func() parser.Parser {
	return []func() parser.Parser{
		testframeworks.NewPytestText,
		testframeworks.NewPytestJSON,
		testframeworks.NewPytestCovText,
		testframeworks.NewGoTestText,
		testframeworks.NewGTestText,
		testframeworks.NewRSpecText,
		testframeworks.NewMochaChaiText,
		testframeworks.NewJUnitXML,
		testframeworks.NewJUnitText,
		testframeworks.NewNUnitXUnit,

		buildsystems.NewBazel,
		buildsystems.NewCMake,
		buildsystems.NewGradle,
		buildsystems.NewMaven,
		buildsystems.NewCargoBuild,
		buildsystems.NewCargoTest,
		buildsystems.NewMSBuild,
		buildsystems.NewNodeBuild,

		linters.NewESLintJSON,
		linters.NewClippyJSON,
		linters.NewRubocopJSON,
		linters.NewFlake8Text,
		linters.NewMypyText,

		ci.NewGitHubActions,

		logging.NewSyslogText,
		logging.NewJSONAppLog,
		logging.NewLog4jText,
		logging.NewLogrusText,
		logging.NewAWSCloudTrail,
		logging.NewGCPCloudLogging,
		logging.NewAzureActivity,
		logging.NewPythonLogging,
		logging.NewWinston,
		logging.NewPino,
		logging.NewBunyan,
		logging.NewSerilog,
		logging.NewNLog,
		logging.NewRubyLogger,
		logging.NewRailsLog,

		network.NewApacheAccess,
		network.NewNginxAccess,

		debuggers.NewValgrind,
		debuggers.NewGDBLLDB,

		security.NewBanditJSON,

		specialized.NewStrace,
	}
}
