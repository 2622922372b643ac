package security

import (
	"encoding/base64"
	"io/ioutil"
	"strings"

	"github.com/go-home-io/minerhub/plugins/common"
	"golang.org/x/crypto/bcrypt"
)

// UsersFileName is a name of htpasswd-like file inside configs folder.
const UsersFileName = "_users"

// Validates basic auth credentials.
type basicAuthProvider struct {
	logger          common.ILoggerProvider
	secret          common.ISecretProvider
	presetPasswords map[string]string
}

// Loads regular htpasswd file.
// Passwords must be generated with -B option.
func newBasicAuth(logger common.ILoggerProvider, secret common.ISecretProvider, file string) *basicAuthProvider {
	b := &basicAuthProvider{
		logger: logger,
		secret: secret,
	}

	if !b.readFile(file) {
		b.logger.Warn("_users file is not found, going to use secret store only", common.LogFileToken, file)
	}

	return b
}

// Returns basic auth header value.
func authHeader(headers map[string][]string) (string, error) {
	v, ok := headers["Authorization"]
	if !ok || 1 != len(v) {
		return "", &ErrNoHeader{}
	}

	return v[0], nil
}

// Validates basic auth header against loaded file.
// If user is not found, falls back to system's secret store.
func (b *basicAuthProvider) authorize(header string) (string, error) {
	auth := strings.SplitN(header, " ", 2)
	if 2 != len(auth) || "Basic" != auth[0] {
		b.logger.Warn("No Basic Auth header found")
		return "", &ErrNoHeader{}
	}

	payload, err := base64.StdEncoding.DecodeString(auth[1])
	if err != nil {
		b.logger.Warn("Failed to decode Basic Auth header")
		return "", &ErrIncorrectHeader{}
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if 2 != len(pair) {
		b.logger.Warn("Corrupted Basic Auth header")
		return "", &ErrCorruptedHeader{Header: auth[1]}
	}

	pwd, ok := b.presetPasswords[pair[0]]
	if ok && bcrypt.CompareHashAndPassword([]byte(pwd), []byte(pair[1])) == nil {
		b.logger.Debug("Found user in _users file", common.LogUserNameToken, pair[0])
		return pair[0], nil
	}

	pwd, err = b.secret.Get(pair[0])
	if err == nil && pwd == pair[1] {
		b.logger.Debug("Found user in secret store", common.LogUserNameToken, pair[0])
		return pair[0], nil
	}

	b.logger.Warn("User is unauthorized", common.LogUserNameToken, pair[0])
	return "", &ErrUserNotFound{User: pair[0]}
}

// Reads htpasswd file.
func (b *basicAuthProvider) readFile(name string) bool {
	b.presetPasswords = make(map[string]string)
	bytes, err := ioutil.ReadFile(name)
	if err != nil {
		return false
	}

	for _, v := range strings.Split(string(bytes), "\n") {
		v = strings.TrimSpace(v)
		if 0 == len(v) || strings.HasPrefix(v, "#") {
			continue
		}

		parts := strings.SplitN(v, ":", 2)
		if 2 != len(parts) {
			continue
		}

		b.presetPasswords[parts[0]] = parts[1]
	}

	return true
}
