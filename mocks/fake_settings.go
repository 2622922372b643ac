//go:build !release
// +build !release

package mocks

import (
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/providers"
)

// FakeSettings is a configurable settings provider.
type FakeSettings struct {
	Logger     common.ILoggerProvider
	CronProv   providers.ICronProvider
	SecretProv common.ISecretProvider
	Hub        *providers.HubSettings
	EntryList  []*miner.ConfigEntry
	Store      providers.IEntryStoreProvider
	Factory    providers.IMinerFactory
	Disc       providers.IDiscoveryProvider
	FanOutProv providers.IInternalFanOutProvider
	StorProv   providers.IStorageProvider
	SecProv    providers.ISecurityProvider
}

// SystemLogger returns logger.
func (f *FakeSettings) SystemLogger() common.ILoggerProvider {
	return f.Logger
}

// PluginLogger returns logger.
func (f *FakeSettings) PluginLogger(string, string) common.ILoggerProvider {
	return f.Logger
}

// Cron returns cron provider.
func (f *FakeSettings) Cron() providers.ICronProvider {
	return f.CronProv
}

// Validator returns always-successful validator.
func (f *FakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

// Secrets returns secret store.
func (f *FakeSettings) Secrets() common.ISecretProvider {
	return f.SecretProv
}

// HubSettings returns hub settings.
func (f *FakeSettings) HubSettings() *providers.HubSettings {
	return f.Hub
}

// Entries returns configured entries.
func (f *FakeSettings) Entries() []*miner.ConfigEntry {
	return f.EntryList
}

// EntryStore returns entry store.
func (f *FakeSettings) EntryStore() providers.IEntryStoreProvider {
	return f.Store
}

// MinerFactory returns miner factory.
func (f *FakeSettings) MinerFactory() providers.IMinerFactory {
	return f.Factory
}

// Discovery returns discovery provider.
func (f *FakeSettings) Discovery() providers.IDiscoveryProvider {
	return f.Disc
}

// FanOut returns fan-out provider.
func (f *FakeSettings) FanOut() providers.IInternalFanOutProvider {
	return f.FanOutProv
}

// Storage returns history storage.
func (f *FakeSettings) Storage() providers.IStorageProvider {
	return f.StorProv
}

// Security returns security provider.
func (f *FakeSettings) Security() providers.ISecurityProvider {
	return f.SecProv
}

// FakeNewSettings creates a new fake settings provider.
func FakeNewSettings(factory providers.IMinerFactory, entries []*miner.ConfigEntry,
	logCallback func(string)) *FakeSettings {
	return &FakeSettings{
		Logger:     FakeNewLogger(logCallback),
		CronProv:   FakeNewCron(),
		SecretProv: FakeNewSecretStore(make(map[string]string), false),
		Hub: &providers.HubSettings{
			Port:           9999,
			UpdateInterval: 10,
			ConnectTimeout: 1,
		},
		EntryList:  entries,
		Store:      FakeNewEntryStore(nil),
		Factory:    factory,
		Disc:       FakeNewDiscovery(),
		FanOutProv: FakeNewFanOut(),
		StorProv:   FakeNewStorage(),
		SecProv:    FakeNewSecurityProvider(true),
	}
}
