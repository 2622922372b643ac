package providers

import (
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(system string, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	Secrets() common.ISecretProvider
	HubSettings() *HubSettings
	Entries() []*miner.ConfigEntry
	EntryStore() IEntryStoreProvider
	MinerFactory() IMinerFactory
	Discovery() IDiscoveryProvider
	FanOut() IInternalFanOutProvider
	Storage() IStorageProvider
	Security() ISecurityProvider
}

// HubSettings has configured data for the hub node.
type HubSettings struct {
	Port           int               `yaml:"port" validate:"required,port" default:"8000"`
	UpdateInterval int               `yaml:"updateInterval" validate:"gte=5,lte=3600" default:"10"`
	ConnectTimeout int               `yaml:"connectTimeout" validate:"gte=1,lte=60" default:"5"`
	Units          string            `yaml:"units" validate:"omitempty,oneof=metric imperial"`
	Discovery      bool              `yaml:"discovery"`
	Derived        map[string]string `yaml:"derived"`

	UOM enums.UOM `yaml:"-"`
}

// RawStorageSettings has configured data for the history storage.
type RawStorageSettings struct {
	Exclude []string `yaml:"exclude"`
	Include []string `yaml:"include"`
}

// RawSecuritySettings has configured data for the API security.
type RawSecuritySettings struct {
	Users []string `yaml:"users"`
}
