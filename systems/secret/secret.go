// Package secret provides secrets storage used for miners' passwords.
package secret

import (
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/logger"
)

// Secret backend definition.
type iSecretBackend interface {
	Get(string) (string, error)
	Set(name string, data string) error
	UpdateLogger(common.ILoggerProvider)
}

// Secrets store wrapper implementation.
type provider struct {
	backend iSecretBackend
	logger  common.ILoggerProvider
}

// ConstructSecret has data required for a new secrets provider.
type ConstructSecret struct {
	Location string
	Logger   common.ILoggerProvider
}

// NewSecretProvider constructs a new file system secrets store provider.
func NewSecretProvider(ctor *ConstructSecret) providers.IInternalSecret {
	secretLogger := newSecretLogger(ctor.Logger)
	secretLogger.Info("Using default File System secret", common.LogFileToken, ctor.Location)

	return &provider{
		backend: newFsSecret(ctor.Location, secretLogger),
		logger:  secretLogger,
	}
}

// Get returns secret value or throws an error if it wasn't found.
func (s *provider) Get(name string) (string, error) {
	s.logger.Debug("Requesting secret", common.LogSecretToken, name)
	value, err := s.backend.Get(name)
	if err != nil {
		s.logger.Warn("Can't find requested secret", common.LogSecretToken, name)
		return "", err
	}

	return value, nil
}

// Set saves a new secret or updates existing one.
func (s *provider) Set(name string, data string) error {
	s.logger.Debug("Setting a new secret", common.LogSecretToken, name)
	err := s.backend.Set(name, data)

	if err != nil {
		s.logger.Error("Failed to add a new secret", err, common.LogSecretToken, name)
		return err
	}
	return nil
}

// UpdateLogger updates a secret's provider logger.
// This component loads before the main logger, so it has to be updated later.
func (s *provider) UpdateLogger(provider common.ILoggerProvider) {
	s.logger = newSecretLogger(provider)
	s.backend.UpdateLogger(s.logger)
}

// Wraps system logger.
func newSecretLogger(systemLogger common.ILoggerProvider) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: systemLogger,
		Provider:     "fs",
		System:       systems.SysSecret.String(),
	})
}
