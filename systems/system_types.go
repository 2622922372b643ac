package systems

// SystemType describes known hub systems.
type SystemType string

const (
	// SysHub describes hub itself.
	SysHub SystemType = "hub"
	// SysLogger describes logger system.
	SysLogger SystemType = "logger"
	// SysSecret describes secret store system.
	SysSecret SystemType = "secret"
	// SysConfig describes config provider system.
	SysConfig SystemType = "config"
	// SysSecurity describes security provider system.
	SysSecurity SystemType = "security"
	// SysMiner describes miner communication system.
	SysMiner SystemType = "miner"
	// SysDiscovery describes network discovery system.
	SysDiscovery SystemType = "discovery"
	// SysFlow describes entry setup wizard.
	SysFlow SystemType = "flow"
	// SysCoordinator describes polling coordinators.
	SysCoordinator SystemType = "coordinator"
	// SysSensor describes sensor entities.
	SysSensor SystemType = "sensor"
	// SysEntity describes entity registry.
	SysEntity SystemType = "entity"
	// SysStorage describes history storage system.
	SysStorage SystemType = "storage"
	// SysServer describes HTTP server.
	SysServer SystemType = "server"
)

// String returns system name.
func (s SystemType) String() string {
	return string(s)
}

// SystemTypeString parses system name.
func SystemTypeString(s string) (SystemType, bool) {
	for _, v := range []SystemType{SysHub, SysLogger, SysSecret, SysConfig, SysSecurity,
		SysMiner, SysDiscovery, SysFlow, SysCoordinator, SysSensor, SysEntity, SysStorage, SysServer} {
		if string(v) == s {
			return v, true
		}
	}

	return "", false
}
