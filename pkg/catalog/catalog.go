// Package catalog holds the closed set of canonical format names, their
// aliases, and the stable group vocabulary. It has no knowledge of how
// any format is decoded; it is a naming layer the registry
// (internal/registry) and bind shim (internal/bind) consult to resolve a
// user-supplied string to a canonical name before looking up a parser.
package catalog

import "strings"

// Canonical format names. This is the closed set; a name is either here,
// an alias resolving to one of these, a Group, or unrecognized.
const (
	PytestText      = "pytest_text"
	PytestJSON      = "pytest_json"
	PytestCovText   = "pytest_cov_text"
	GoTestText      = "gotest_text"
	GTestText       = "gtest_text"
	RSpecText       = "rspec_text"
	MochaChaiText   = "mocha_chai_text"
	JUnitXML        = "junit_xml"
	JUnitText       = "junit_text"
	NUnitXUnitText  = "nunit_xunit_text"
	Bazel           = "bazel"
	CMake           = "cmake"
	Gradle          = "gradle"
	Maven           = "maven"
	CargoBuild      = "cargo_build"
	CargoTest       = "cargo_test"
	MSBuild         = "msbuild"
	NodeBuild       = "node_build"
	ESLintJSON      = "eslint_json"
	ClippyJSON      = "clippy_json"
	RubocopJSON     = "rubocop_json"
	Flake8Text      = "flake8_text"
	MypyText        = "mypy_text"
	GitHubActions   = "github_actions_text"
	SyslogText      = "syslog_text"
	JSONAppLog      = "json_app_log"
	Log4jText       = "log4j_text"
	LogrusText      = "logrus_text"
	BanditJSON      = "bandit_json"
	Strace          = "strace"
	ApacheAccess    = "apache_access"
	NginxAccess     = "nginx_access"
	AWSCloudTrail   = "aws_cloudtrail"
	GCPCloudLogging = "gcp_cloud_logging"
	AzureActivity   = "azure_activity"
	PythonLogging   = "python_logging"
	Winston         = "winston"
	Pino            = "pino"
	Bunyan          = "bunyan"
	Serilog         = "serilog"
	NLog            = "nlog"
	RubyLogger      = "ruby_logger"
	RailsLog        = "rails_log"
	Valgrind        = "valgrind"
	GDBLLDB         = "gdb_lldb"
)

// Group names are stable; callers may rely on them across releases.
const (
	GroupPython     = "python"
	GroupRust       = "rust"
	GroupCI         = "ci"
	GroupTest       = "test"
	GroupJava       = "java"
	GroupDotNet     = "dotnet"
	GroupJavaScript = "javascript"
	GroupGo         = "go"
	GroupCCpp       = "c_cpp"
	GroupRuby       = "ruby"
	GroupCoverage   = "coverage"
)

// AllGroups lists every stable group name, used by IsGroup.
var AllGroups = []string{
	GroupPython, GroupRust, GroupCI, GroupTest, GroupJava, GroupDotNet,
	GroupJavaScript, GroupGo, GroupCCpp, GroupRuby, GroupCoverage,
}

// aliases maps a lower-cased user-facing alias to its canonical name.
// Registration order is irrelevant here; lookups are by exact key.
var aliases = map[string]string{
	"pytest":             PytestText,
	"py_test":            PytestText,
	"pytest-json":        PytestJSON,
	"pytest_cov":         PytestCovText,
	"pytest-cov":         PytestCovText,
	"go_test":            GoTestText,
	"go-test":            GoTestText,
	"gotest":             GoTestText,
	"gtest":              GTestText,
	"googletest":         GTestText,
	"rspec":              RSpecText,
	"mocha":              MochaChaiText,
	"chai":               MochaChaiText,
	"junit":              JUnitXML,
	"junit-xml":          JUnitXML,
	"junit-text":         JUnitText,
	"nunit":              NUnitXUnitText,
	"xunit":              NUnitXUnitText,
	"cmake-build":        CMake,
	"gradle-build":       Gradle,
	"maven-build":        Maven,
	"cargo":              CargoTest,
	"cargo-build":        CargoBuild,
	"cargo-test":         CargoTest,
	"msbuild-log":        MSBuild,
	"npm":                NodeBuild,
	"node":               NodeBuild,
	"eslint":             ESLintJSON,
	"clippy":             ClippyJSON,
	"rubocop":            RubocopJSON,
	"flake8":             Flake8Text,
	"mypy":               MypyText,
	"github-actions":     GitHubActions,
	"gha":                GitHubActions,
	"syslog":             SyslogText,
	"json-log":           JSONAppLog,
	"log4j":              Log4jText,
	"logrus":             LogrusText,
	"bandit":             BanditJSON,
	"apache":             ApacheAccess,
	"nginx":              NginxAccess,
	"cloudtrail":         AWSCloudTrail,
	"gcp_logging":        GCPCloudLogging,
	"azure_activity_log": AzureActivity,
	"python_log":         PythonLogging,
	"winston_json":       Winston,
	"pino_json":          Pino,
	"bunyan_json":        Bunyan,
	"serilog_json":       Serilog,
	"serilog_text":       Serilog,
	"nlog_text":          NLog,
	"rails":              RailsLog,
	"gdb":                GDBLLDB,
	"lldb":               GDBLLDB,
	"memcheck":           Valgrind,
}

// Canonicalize resolves a user-facing format string (case-insensitive) to
// its canonical name. It returns the input unchanged (lower-cased) when no
// alias matches, since the input may already be a canonical name, a group
// name, or an unrecognized value; the caller (internal/registry) is
// responsible for drawing that distinction.
func Canonicalize(format string) string {
	key := strings.ToLower(strings.TrimSpace(format))
	if canon, ok := aliases[key]; ok {
		return canon
	}
	return key
}

// IsGroup reports whether name (case-insensitive) is one of the stable
// group names.
func IsGroup(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, g := range AllGroups {
		if g == key {
			return true
		}
	}
	return false
}
