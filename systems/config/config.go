// Package config loads raw yaml configuration files.
package config

import (
	"path/filepath"
	"strings"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/logger"
	"github.com/go-home-io/minerhub/utils"
)

// IConfigProvider provides capabilities for loading system configuration.
type IConfigProvider interface {
	Load() chan []byte
}

// ConstructConfig contains data required for a new config provider.
type ConstructConfig struct {
	Location     string
	PluginLogger common.ILoggerProvider
}

// NewConfigProvider constructs a new file system config provider.
func NewConfigProvider(ctor *ConstructConfig) IConfigProvider {
	configLogger := logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: ctor.PluginLogger,
		Provider:     "fs",
		System:       systems.SysConfig.String(),
	})

	loc := ctor.Location
	if "" == loc {
		loc = utils.GetDefaultConfigsDir()
		configLogger.Info("Using default location", "location", loc)
	}

	return &fsConfig{
		location: loc,
		logger:   configLogger,
	}
}

// IsValidConfigFileName checks whether file should be loaded.
// Files started with underscore are internal stores, e.g. secrets.
func IsValidConfigFileName(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(base))
	return ".yaml" == ext || ".yml" == ext
}
