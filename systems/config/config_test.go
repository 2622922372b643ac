package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests config file names.
func TestIsValidConfigFileName(t *testing.T) {
	data := map[string]bool{
		"/configs/hub.yaml":     true,
		"/configs/miners.YML":   true,
		"/configs/_secrets":     false,
		"/configs/_users.yaml":  false,
		"/configs/.hidden.yaml": false,
		"/configs/readme.md":    false,
		"entries.yaml":          true,
	}

	for k, v := range data {
		assert.Equal(t, v, IsValidConfigFileName(k), k)
	}
}

// Tests that only config files are loaded.
func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "minerhub-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0700))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "hub.yaml"), []byte("a"), 0600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "nested", "miner.yml"), []byte("b"), 0600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "_secrets"), []byte("c"), 0600))

	c := NewConfigProvider(&ConstructConfig{Location: dir, PluginLogger: mocks.FakeNewLogger(nil)})
	data := make([]string, 0)
	for d := range c.Load() {
		data = append(data, string(d))
	}

	assert.Equal(t, []string{"a", "b"}, data)
}

// Tests missing folder.
func TestLoadMissingFolder(t *testing.T) {
	c := NewConfigProvider(&ConstructConfig{Location: "/not/existing/folder",
		PluginLogger: mocks.FakeNewLogger(nil)})
	assert.Nil(t, c.Load())
}
