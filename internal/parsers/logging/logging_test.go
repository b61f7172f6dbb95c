package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devlogscan/pkg/types"
)

func TestSyslogParsesRecordLine(t *testing.T) {
	content := "Jan  2 15:04:05 host1 sshd[999]: Failed password for root\n"
	events, err := SyslogText{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "host1", events[0].Origin)
	assert.Equal(t, "sshd", events[0].Principal)
	assert.Equal(t, int32(1), events[0].LogLineStart)
}

func TestNLogParsesDefaultLayout(t *testing.T) {
	content := "2025-01-15 10:30:45.1234|INFO|MyApp.Program|Application started\n" +
		"2025-01-15 10:30:46.5678|ERROR|MyApp.Service|Connection failed|System.TimeoutException\n"

	require.True(t, NLog{}.CanParse(content))
	events, err := NLog{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "MyApp.Program", events[0].Category)
	assert.Equal(t, "Application started", events[0].Message)
	assert.Equal(t, "info", events[0].Severity)
	assert.Equal(t, types.StatusInfo, events[0].Status)

	assert.Equal(t, types.StatusError, events[1].Status)
	assert.Equal(t, "System.TimeoutException", events[1].ErrorCode)
}

func TestSerilogCollectsExceptionBlock(t *testing.T) {
	content := "2024-01-02 15:04:05.123 +00:00 [INF] started\n" +
		"2024-01-02 15:04:06.000 +00:00 [ERR] request failed\n" +
		"System.TimeoutException: timed out\n" +
		"   at MyApp.Service.Call()"

	events, err := Serilog{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, types.StatusError, events[1].Status)
	assert.Contains(t, events[1].LogContent, "System.TimeoutException")
	assert.Equal(t, int32(2), events[1].LogLineStart)
	assert.Equal(t, int32(4), events[1].LogLineEnd)
}

func TestPythonLoggingAbsorbsTraceback(t *testing.T) {
	content := "2024-01-02 15:04:05,123 - app.views - ERROR - unhandled\n" +
		"Traceback (most recent call last):\n" +
		"  File \"app/views.py\", line 10, in index\n" +
		"ValueError: nope"

	events, err := PythonLogging{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.StatusError, events[0].Status)
	assert.Equal(t, "app/views.py", events[0].RefFile)
	assert.Equal(t, int32(10), events[0].RefLine)
	assert.Equal(t, int32(1), events[0].LogLineStart)
	assert.Equal(t, int32(4), events[0].LogLineEnd)
}

func TestPythonLoggingBasicConfigShape(t *testing.T) {
	events, err := PythonLogging{}.Parse("WARNING:root:careful\n")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "warning", events[0].Severity)
	assert.Equal(t, "root", events[0].FunctionName)
	assert.Equal(t, "careful", events[0].Message)
}

func TestWinstonParsesAndClassifies(t *testing.T) {
	content := `{"level":"error","message":"boom","timestamp":"2024-01-02T15:04:05Z"}` + "\n" +
		`{"level":"info","message":"ok","timestamp":"2024-01-02T15:04:06Z"}`

	require.True(t, Winston{}.CanParse(content))
	events, err := Winston{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, types.StatusError, events[0].Status)
	assert.Equal(t, "2024-01-02T15:04:05Z", events[0].StartedAt)
	assert.Equal(t, types.StatusPass, events[1].Status)
}

func TestPinoNumericLevelsAndEpochTime(t *testing.T) {
	line := `{"level":50,"time":1609459200000,"pid":123,"hostname":"h1","msg":"boom"}`

	require.True(t, Pino{}.CanParse(line))
	events, err := Pino{}.Parse(line)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Severity)
	assert.Equal(t, types.StatusError, events[0].Status)
	assert.Equal(t, "h1", events[0].Origin)
	assert.Equal(t, "2021-01-01T00:00:00Z", events[0].StartedAt)
}

func TestBunyanVersionFieldDisambiguates(t *testing.T) {
	bunyanLine := `{"v":0,"level":30,"name":"app","hostname":"h1","pid":1,"time":"2024-01-02T15:04:05.000Z","msg":"hi"}`
	pinoLine := `{"level":30,"time":1609459200000,"pid":1,"hostname":"h1","msg":"hi"}`

	assert.True(t, Bunyan{}.CanParse(bunyanLine))
	assert.False(t, Pino{}.CanParse(bunyanLine))
	assert.True(t, Pino{}.CanParse(pinoLine))
	assert.False(t, Bunyan{}.CanParse(pinoLine))
	assert.False(t, Winston{}.CanParse(pinoLine))

	events, err := Bunyan{}.Parse(bunyanLine)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "app", events[0].FunctionName)
	assert.Equal(t, "info", events[0].Severity)
}

func TestRubyLoggerDefaultFormat(t *testing.T) {
	content := "I, [2024-01-02T15:04:05.000000 #1234]  INFO -- main: hello\n" +
		"E, [2024-01-02T15:04:06.000000 #1234] ERROR -- app: boom"

	events, err := RubyLogger{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "main", events[0].FunctionName)
	assert.Equal(t, "hello", events[0].Message)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, types.StatusError, events[1].Status)
}

func TestRailsRequestLifecycle(t *testing.T) {
	content := `Started GET "/users/1" for 127.0.0.1 at 2024-01-02 15:04:05 +0000` + "\n" +
		"Processing by UsersController#show as HTML\n" +
		"Completed 200 OK in 15ms (Views: 10.0ms | ActiveRecord: 2.0ms)\n" +
		`Started POST "/orders" for 10.0.0.9 at 2024-01-02 15:04:06 +0000` + "\n" +
		"Processing by OrdersController#create as JSON\n" +
		"Completed 500 Internal Server Error in 120ms"

	events, err := RailsLog{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "GET", events[0].FunctionName)
	assert.Equal(t, "/users/1", events[0].Target)
	assert.Equal(t, "UsersController#show", events[0].Unit)
	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, 15.0, events[0].ExecutionTime)
	assert.Equal(t, int32(1), events[0].LogLineStart)
	assert.Equal(t, int32(3), events[0].LogLineEnd)

	assert.Equal(t, types.StatusError, events[1].Status)
	assert.Equal(t, "500", events[1].ErrorCode)
	assert.Equal(t, 120.0, events[1].ExecutionTime)
}

func TestCloudTrailEnvelopeAndErrorRecords(t *testing.T) {
	content := `{"Records":[` +
		`{"eventTime":"2024-01-02T15:04:05Z","eventName":"ConsoleLogin","eventSource":"signin.amazonaws.com",` +
		`"awsRegion":"us-east-1","sourceIPAddress":"1.2.3.4",` +
		`"userIdentity":{"type":"IAMUser","arn":"arn:aws:iam::1:user/alice"},` +
		`"eventID":"AABBCCDD-1122-3344-5566-77889900AABB"},` +
		`{"eventTime":"2024-01-02T15:05:00Z","eventName":"GetObject","eventSource":"s3.amazonaws.com",` +
		`"userIdentity":{"type":"IAMUser","userName":"bob"},` +
		`"errorCode":"AccessDenied","errorMessage":"Access Denied"}]}`

	require.True(t, AWSCloudTrail{}.CanParse(content))
	events, err := AWSCloudTrail{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, types.StatusPass, events[0].Status)
	assert.Equal(t, "arn:aws:iam::1:user/alice", events[0].Principal)
	assert.Equal(t, "IAMUser", events[0].ActorType)
	assert.Equal(t, "aabbccdd-1122-3344-5566-77889900aabb", events[0].ExternalID)

	assert.Equal(t, types.StatusFail, events[1].Status)
	assert.Equal(t, "AccessDenied", events[1].ErrorCode)
	assert.Equal(t, "Access Denied", events[1].Message)
	assert.Equal(t, "bob", events[1].Principal)
}

func TestGCPCloudLoggingEntry(t *testing.T) {
	line := `{"timestamp":"2024-01-02T15:04:05Z","severity":"ERROR","logName":"projects/p/logs/app","insertId":"abc123","textPayload":"boom"}`

	require.True(t, GCPCloudLogging{}.CanParse(line))
	events, err := GCPCloudLogging{}.Parse(line)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Severity)
	assert.Equal(t, types.StatusError, events[0].Status)
	assert.Equal(t, "abc123", events[0].ExternalID)
	assert.Equal(t, "projects/p/logs/app", events[0].Target)
	assert.Equal(t, "boom", events[0].Message)
}

func TestAzureActivityRecord(t *testing.T) {
	line := `{"time":"2024-01-02T15:04:05Z","operationName":"Microsoft.Compute/virtualMachines/write",` +
		`"level":"Error","resultType":"Failure","caller":"alice@example.com",` +
		`"resourceId":"/subscriptions/s/vm1","correlationId":"AABBCCDD-1122-3344-5566-77889900AABB","callerIpAddress":"1.2.3.4"}`

	require.True(t, AzureActivity{}.CanParse(line))
	events, err := AzureActivity{}.Parse(line)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.StatusFail, events[0].Status)
	assert.Equal(t, "Failure", events[0].ErrorCode)
	assert.Equal(t, "alice@example.com", events[0].Principal)
	assert.Equal(t, "/subscriptions/s/vm1", events[0].Target)
	assert.Equal(t, "aabbccdd-1122-3344-5566-77889900aabb", events[0].ExternalID)
}

func TestEmptyContentYieldsSummaryPlaceholder(t *testing.T) {
	for name, p := range map[string]interface {
		Parse(string) ([]types.ValidationEvent, error)
	}{
		"nlog": NLog{}, "serilog": Serilog{}, "winston": Winston{},
		"pino": Pino{}, "bunyan": Bunyan{}, "ruby_logger": RubyLogger{},
		"rails": RailsLog{}, "python_logging": PythonLogging{},
		"cloudtrail": AWSCloudTrail{}, "gcp": GCPCloudLogging{}, "azure": AzureActivity{},
	} {
		events, err := p.Parse("nothing recognizable here")
		require.NoError(t, err, name)
		require.Len(t, events, 1, name)
		assert.Equal(t, types.EventTypeSummary, events[0].EventType, name)
	}
}
