// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/config"
	"github.com/go-home-io/minerhub/systems/discovery"
	"github.com/go-home-io/minerhub/systems/fanout"
	"github.com/go-home-io/minerhub/systems/logger"
	minerSystem "github.com/go-home-io/minerhub/systems/miner"
	"github.com/go-home-io/minerhub/systems/secret"
	"github.com/go-home-io/minerhub/systems/security"
	"github.com/go-home-io/minerhub/systems/storage"
	"github.com/go-home-io/minerhub/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
	// Provider of entries created by setup flow.
	entryProvider = "antminer"
	// Secrets file name.
	secretsFileName = "_secrets"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	ConfigDir string `short:"c" long:"configs" description:"Configs location. Defaults to ./configs."`
	LogLevel  string `short:"l" long:"log-level" description:"Overrides configured log level."`
	Port      int    `short:"p" long:"port" description:"Overrides configured HTTP port."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Config   []byte
}

// Logger config record.
type rawLogger struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// System settings.
type settingsProvider struct {
	configDir string
	console   common.ILoggerProvider

	logger     common.ILoggerProvider
	cron       providers.ICronProvider
	validator  providers.IValidatorProvider
	secrets    providers.IInternalSecret
	hub        *providers.HubSettings
	entries    []*miner.ConfigEntry
	entryStore *entryStore
	factory    providers.IMinerFactory
	discovery  providers.IDiscoveryProvider
	fanOut     providers.IInternalFanOutProvider
	storage    providers.IStorageProvider
	security   providers.ISecurityProvider

	rawStorage  *providers.RawStorageSettings
	rawSecurity *providers.RawSecuritySettings
}

// Load system configuration.
func Load(options *StartUpOptions) providers.ISettingsProvider {
	console := logger.NewConsoleLogger()
	s, err := load(options, console)
	if err != nil {
		console.Fatal("Failed to load configuration", err, common.LogSystemToken, logSystem)
		return nil
	}

	return s
}

// Loads configuration with provided console logger.
func load(options *StartUpOptions, console common.ILoggerProvider) (*settingsProvider, error) {
	s := &settingsProvider{
		configDir: options.ConfigDir,
		console:   console,
		logger:    console,
		entries:   make([]*miner.ConfigEntry, 0),
	}

	if "" == s.configDir {
		s.configDir = utils.GetDefaultConfigsDir()
	}

	s.validator = utils.NewValidator(s.logger)
	s.secrets = secret.NewSecretProvider(&secret.ConstructSecret{
		Location: filepath.Join(s.configDir, secretsFileName),
		Logger:   s.logger,
	})

	templateProvider := newTemplateProvider(&constructTemplate{
		Logger:  s.logger,
		Secrets: s.secrets,
	})

	configProvider := config.NewConfigProvider(&config.ConstructConfig{
		Location:     s.configDir,
		PluginLogger: s.logger,
	})

	dataChan := configProvider.Load()
	if nil == dataChan {
		return nil, errors.New("config provider returned nothing")
	}

	allProviders := make([]*rawProvider, 0)
	for fileData := range dataChan {
		allProviders = append(allProviders, s.loadFile(fileData, templateProvider)...)
	}

	allProviders = s.loadLoggerProvider(allProviders, options.LogLevel)
	for _, v := range allProviders {
		s.parseProvider(v)
	}

	if err := s.validate(options); err != nil {
		return nil, err
	}

	return s, nil
}

// Validates whether all necessary settings are present and builds providers.
func (s *settingsProvider) validate(options *StartUpOptions) error {
	if nil == s.hub {
		s.logger.Warn("Hub settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.hub = &providers.HubSettings{}
		if !s.validator.Validate(s.hub) {
			return errors.New("default hub settings are invalid")
		}
	}

	if options.Port > 0 {
		s.hub.Port = options.Port
	}

	s.cron = utils.NewCron()
	s.fanOut = fanout.NewFanOut(s.PluginLogger(systems.SysHub.String(), "fanout"))
	s.storage = storage.NewStorageProvider(&storage.ConstructStorage{
		PluginLogger: s.logger,
		Settings:     s.rawStorage,
	})
	s.security = security.NewSecurityProvider(&security.ConstructSecurityProvider{
		Logger:     s.logger,
		Secret:     s.secrets,
		ConfigsDir: s.configDir,
		Settings:   s.rawSecurity,
	})

	timeout := time.Duration(s.hub.ConnectTimeout) * time.Second
	factory, err := minerSystem.NewFactory(&minerSystem.ConstructFactory{
		Logger:  s.PluginLogger(systems.SysMiner.String(), entryProvider),
		Timeout: timeout,
		Derived: s.hub.Derived,
	})
	if err != nil {
		return errors.Wrap(err, "miner factory")
	}

	s.factory = factory
	s.discovery = discovery.NewDiscoveryProvider(&discovery.ConstructDiscovery{
		Logger:  s.PluginLogger(systems.SysDiscovery.String(), ""),
		Factory: s.factory,
	})

	s.entryStore = newEntryStore(filepath.Join(s.configDir, EntriesFileName), s.secrets,
		s.PluginLogger(systems.SysConfig.String(), "entries"), s.entries)
	for _, v := range s.entries {
		s.entryStore.restoreSecrets(v)
	}

	return nil
}

// Processes single yaml file.
func (s *settingsProvider) loadFile(fileData []byte, templateProvider ITemplateProvider) []*rawProvider {
	provs := make([]*rawProvider, 0)

	fileData, err := templateProvider.Process(fileData)
	if err != nil {
		s.logger.Error("Failed to process config template", err, common.LogSystemToken, logSystem)
		return provs
	}

	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, logSystem)
			break
		}

		if nil == value {
			continue
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		if componentType == "" || componentProvider == "" {
			s.logger.Warn("Failed to parse a record in the config file: system or provider is not defined",
				common.LogSystemToken, logSystem)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			Provider: componentProvider,
			System:   componentType,
			Config:   byteData,
		})
	}

	return provs
}

// Loads logger configuration.
// Command line level takes precedence over the configured one.
func (s *settingsProvider) loadLoggerProvider(provs []*rawProvider, override string) []*rawProvider {
	providersLeft := make([]*rawProvider, 0, len(provs))
	level := ""
	for _, v := range provs {
		if v.System != systems.SysLogger.String() {
			providersLeft = append(providersLeft, v)
			continue
		}

		raw := &rawLogger{}
		if err := yaml.Unmarshal(v.Config, raw); err != nil || !s.validator.Validate(raw) {
			s.logger.Warn("Failed to load logger settings", common.LogProviderToken, v.Provider)
			continue
		}

		level = raw.Level
	}

	if "" != override {
		level = override
	}

	lvl, err := logger.LevelString(level)
	if err != nil {
		s.logger.Warn("Unknown log level, using info", common.LogNameToken, level)
	}

	s.logger = logger.NewLoggerProvider(&logger.ConstructLogger{
		Level:  lvl,
		Target: s.console,
	})

	s.validator.SetLogger(s.PluginLogger("validator", ""))
	s.secrets.UpdateLogger(s.logger)
	return providersLeft
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, ok := systems.SystemTypeString(provider.System)
	if !ok {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return
	}

	var err error
	switch sys {
	case systems.SysHub:
		err = s.processHub(provider)
	case systems.SysStorage:
		err = s.processStorage(provider)
	case systems.SysSecurity:
		err = s.processSecurity(provider)
	case systems.SysMiner:
		err = s.processEntry(provider)
	default:
		s.logger.Warn("System is not configurable", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}

	if err != nil {
		s.logger.Error("Failed to load provider config", err, common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}
}

// Processes hub settings.
func (s *settingsProvider) processHub(provider *rawProvider) error {
	if nil != s.hub {
		s.logger.Warn("Duplicated hub settings", common.LogProviderToken, provider.Provider)
		return nil
	}

	set := &providers.HubSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "unmarshal hub settings")
	}

	if !s.validator.Validate(set) {
		return errors.New("incorrect hub settings")
	}

	uom, err := enums.UOMString(set.Units)
	if err != nil {
		return err
	}

	set.UOM = uom
	s.hub = set
	return nil
}

// Processes storage provider.
func (s *settingsProvider) processStorage(provider *rawProvider) error {
	if nil != s.rawStorage {
		s.logger.Warn("Duplicated storage provider", common.LogProviderToken, provider.Provider)
		return nil
	}

	set := &providers.RawStorageSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "unmarshal storage settings")
	}

	s.rawStorage = set
	return nil
}

// Processes security settings.
func (s *settingsProvider) processSecurity(provider *rawProvider) error {
	if nil != s.rawSecurity {
		s.logger.Warn("Duplicated security provider", common.LogProviderToken, provider.Provider)
		return nil
	}

	set := &providers.RawSecuritySettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "unmarshal security settings")
	}

	s.rawSecurity = set
	return nil
}

// Processes configured miner entry.
func (s *settingsProvider) processEntry(provider *rawProvider) error {
	raw := &rawEntry{}
	if err := yaml.Unmarshal(provider.Config, raw); err != nil {
		return errors.Wrap(err, "unmarshal entry")
	}

	entry := &raw.ConfigEntry
	if "" == entry.ID && "" != entry.Title {
		s.logger.Warn("Entry name is not configured, using title", common.LogNameToken, entry.Title)
		entry.ID = utils.NormalizeDeviceName(entry.Title)
	}

	if nil == entry.Data {
		entry.Data = make(map[string]string)
	}

	if !s.validator.Validate(entry) || !utils.IsValidHost(entry.IP()) {
		return &ErrInvalidEntry{ID: entry.ID}
	}

	for _, v := range s.entries {
		if v.ID == entry.ID {
			s.logger.Warn("Ignoring entry since name is duplicated", common.LogEntryToken, entry.ID)
			return nil
		}
	}

	if "" == entry.Title {
		entry.Title = entry.Data[miner.ConfTitle]
	}

	if "" == entry.Title {
		entry.Title = entry.ID
	}

	s.entries = append(s.entries, entry)
	return nil
}
