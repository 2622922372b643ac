package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogHubToken describes hub ID.
	LogHubToken = "hub"
	// LogEntryToken describes config entry log entry.
	LogEntryToken = "entry"
	// LogEntityToken describes entity log entry.
	LogEntityToken = "entity"
	// LogSensorToken describes sensor key log entry.
	LogSensorToken = "sensor"
	// LogBoardToken describes hashboard index log entry.
	LogBoardToken = "board"
	// LogDeviceHostToken describes device host log entry.
	LogDeviceHostToken = "host_ip"
	// LogInterfaceToken describes miner management interface log entry.
	LogInterfaceToken = "interface"
	// LogFlowToken describes setup flow log entry.
	LogFlowToken = "flow"
	// LogStepToken describes setup flow step log entry.
	LogStepToken = "step"
	// LogUserNameToken describes user name log entry.
	LogUserNameToken = "user"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogSecretToken describes secret log entry.
	LogSecretToken = "secret"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
	// LogNameToken describes name log entry.
	LogNameToken = "name"
)
