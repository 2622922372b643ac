package secret

import (
	"io/ioutil"
	"os"
	"sync"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrSecretNotFound is returned when a secret is missing.
var ErrSecretNotFound = errors.New("secret not found")

// File system secrets store.
// Secrets are kept in a single yaml file as a flat map.
type fsSecret struct {
	sync.Mutex
	location string
	logger   common.ILoggerProvider
	secrets  map[string]string
}

// Constructs a new file system store and loads existing secrets.
func newFsSecret(location string, logger common.ILoggerProvider) *fsSecret {
	s := &fsSecret{
		location: location,
		logger:   logger,
		secrets:  make(map[string]string),
	}

	s.load()
	return s
}

// Get returns stored secret.
func (s *fsSecret) Get(name string) (string, error) {
	s.Lock()
	defer s.Unlock()

	v, ok := s.secrets[name]
	if !ok {
		return "", ErrSecretNotFound
	}

	return v, nil
}

// Set stores secret and flushes the file.
func (s *fsSecret) Set(name string, data string) error {
	s.Lock()
	defer s.Unlock()

	prev, existed := s.secrets[name]
	s.secrets[name] = data
	if err := s.save(); err != nil {
		if existed {
			s.secrets[name] = prev
		} else {
			delete(s.secrets, name)
		}

		return err
	}

	return nil
}

// UpdateLogger replaces logger.
func (s *fsSecret) UpdateLogger(provider common.ILoggerProvider) {
	s.logger = provider
}

// Loads secrets file, missing file is fine.
func (s *fsSecret) load() {
	if "" == s.location {
		return
	}

	data, err := ioutil.ReadFile(s.location)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("Failed to read secrets file", err, common.LogFileToken, s.location)
		}

		return
	}

	if err := yaml.Unmarshal(data, &s.secrets); err != nil {
		s.logger.Error("Failed to parse secrets file", err, common.LogFileToken, s.location)
		s.secrets = make(map[string]string)
	}
}

// Saves all secrets.
func (s *fsSecret) save() error {
	if "" == s.location {
		return nil
	}

	data, err := yaml.Marshal(s.secrets)
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	return errors.Wrap(ioutil.WriteFile(s.location, data, 0600), "write failed")
}
