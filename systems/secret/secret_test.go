package secret

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates temp secrets file location.
func tempLocation(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "minerhub-secret")
	require.NoError(t, err)
	return filepath.Join(dir, "_secrets"), func() { os.RemoveAll(dir) } // nolint: errcheck
}

// Tests that secrets survive reload.
func TestSetGetPersisted(t *testing.T) {
	location, cleanup := tempLocation(t)
	defer cleanup()

	s := NewSecretProvider(&ConstructSecret{Location: location, Logger: mocks.FakeNewLogger(nil)})
	require.NoError(t, s.Set("s9_web_password", "root"))

	v, err := s.Get("s9_web_password")
	require.NoError(t, err)
	assert.Equal(t, "root", v)

	s2 := NewSecretProvider(&ConstructSecret{Location: location, Logger: mocks.FakeNewLogger(nil)})
	v, err = s2.Get("s9_web_password")
	require.NoError(t, err)
	assert.Equal(t, "root", v)
}

// Tests missing secret.
func TestMissingSecret(t *testing.T) {
	s := NewSecretProvider(&ConstructSecret{Logger: mocks.FakeNewLogger(nil)})
	_, err := s.Get("missing")
	assert.Equal(t, ErrSecretNotFound, err)
}

// Tests existing yaml file.
func TestLoadExisting(t *testing.T) {
	location, cleanup := tempLocation(t)
	defer cleanup()
	require.NoError(t, ioutil.WriteFile(location, []byte("rpc: admin\nssh: \"\"\n"), 0600))

	s := NewSecretProvider(&ConstructSecret{Location: location, Logger: mocks.FakeNewLogger(nil)})
	v, err := s.Get("rpc")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	v, err = s.Get("ssh")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

// Tests broken yaml file.
func TestLoadBroken(t *testing.T) {
	location, cleanup := tempLocation(t)
	defer cleanup()
	require.NoError(t, ioutil.WriteFile(location, []byte("[[["), 0600))

	errored := false
	s := NewSecretProvider(&ConstructSecret{Location: location, Logger: mocks.FakeNewLogger(func(s string) {
		if "Failed to parse secrets file" == s {
			errored = true
		}
	})})

	assert.True(t, errored)
	_, err := s.Get("rpc")
	assert.Error(t, err)
}

// Tests failed write rollback.
func TestSetFailure(t *testing.T) {
	s := NewSecretProvider(&ConstructSecret{
		Location: filepath.Join(os.TempDir(), "minerhub-missing-dir", "nested", "_secrets"),
		Logger:   mocks.FakeNewLogger(nil),
	})

	assert.Error(t, s.Set("key", "value"))
	_, err := s.Get("key")
	assert.Error(t, err)
}
