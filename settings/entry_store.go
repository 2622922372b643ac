package settings

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// EntriesFileName is a name of file with entries created by setup flow.
const EntriesFileName = "entries.yaml"

// Raw entry config record.
type rawEntry struct {
	System            string `yaml:"system"`
	Provider          string `yaml:"provider"`
	miner.ConfigEntry `yaml:",inline"`
}

// Persists entries created by setup flow.
// Passwords are kept in the secret store, blank ones included.
type entryStore struct {
	sync.Mutex
	file    string
	secrets common.ISecretProvider
	logger  common.ILoggerProvider
	known   map[string]bool
}

// Constructs a new entry store.
func newEntryStore(file string, secrets common.ISecretProvider, logger common.ILoggerProvider,
	entries []*miner.ConfigEntry) *entryStore {
	s := &entryStore{
		file:    file,
		secrets: secrets,
		logger:  logger,
		known:   make(map[string]bool),
	}

	for _, v := range entries {
		s.known[v.ID] = true
	}

	return s
}

// Returns secret name of entry field.
func secretName(entryID string, key string) string {
	return fmt.Sprintf("%s_%s", entryID, key)
}

// Save persists a new entry.
func (s *entryStore) Save(entry *miner.ConfigEntry) error {
	s.Lock()
	defer s.Unlock()

	if "" == entry.ID || !utils.IsValidHost(entry.IP()) {
		return &ErrInvalidEntry{ID: entry.ID}
	}

	if s.known[entry.ID] {
		return &ErrDuplicateEntry{ID: entry.ID}
	}

	raw := &rawEntry{
		System:   systems.SysMiner.String(),
		Provider: entryProvider,
		ConfigEntry: miner.ConfigEntry{
			ID:    entry.ID,
			Title: entry.Title,
			Data:  make(map[string]string),
		},
	}

	for k, v := range entry.Data {
		if !miner.IsSecretKey(k) {
			raw.Data[k] = v
			continue
		}

		if err := s.secrets.Set(secretName(entry.ID, k), v); err != nil {
			return errors.Wrap(err, "save secret")
		}
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return errors.Wrap(err, "marshal entry")
	}

	f, err := os.OpenFile(s.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(err, "open entries file")
	}
	defer f.Close() // nolint: errcheck

	if _, err = f.Write(append([]byte("---\n"), data...)); err != nil {
		return errors.Wrap(err, "write entries file")
	}

	s.known[entry.ID] = true
	s.logger.Info("Saved new entry", common.LogEntryToken, entry.ID, common.LogFileToken, s.file)
	return nil
}

// Restores entry passwords from the secret store.
func (s *entryStore) restoreSecrets(entry *miner.ConfigEntry) {
	for _, k := range miner.SecretKeys {
		if _, ok := entry.Data[k]; ok {
			continue
		}

		v, err := s.secrets.Get(secretName(entry.ID, k))
		if err != nil {
			continue
		}

		entry.Data[k] = v
	}
}
