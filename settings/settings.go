package settings

import (
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger specifically for system provider.
func (s *settingsProvider) PluginLogger(system string, provider string) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		System:       system,
		Provider:     provider,
	})
}

// Secrets returns secrets store.
func (s *settingsProvider) Secrets() common.ISecretProvider {
	return s.secrets
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// HubSettings returns hub settings.
func (s *settingsProvider) HubSettings() *providers.HubSettings {
	return s.hub
}

// Entries returns configured miner entries.
func (s *settingsProvider) Entries() []*miner.ConfigEntry {
	return s.entries
}

// EntryStore returns store for the new entries.
func (s *settingsProvider) EntryStore() providers.IEntryStoreProvider {
	return s.entryStore
}

// MinerFactory returns miner factory.
func (s *settingsProvider) MinerFactory() providers.IMinerFactory {
	return s.factory
}

// Discovery returns network discovery provider.
func (s *settingsProvider) Discovery() providers.IDiscoveryProvider {
	return s.discovery
}

// FanOut returns fan out channel.
func (s *settingsProvider) FanOut() providers.IInternalFanOutProvider {
	return s.fanOut
}

// Storage returns a storage provider.
func (s *settingsProvider) Storage() providers.IStorageProvider {
	return s.storage
}

// Security returns a security provider.
func (s *settingsProvider) Security() providers.ISecurityProvider {
	return s.security
}
