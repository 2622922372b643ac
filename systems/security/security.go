// Package security contains API authentication provider.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/logger"
	"github.com/gobwas/glob"
	"github.com/patrickmn/go-cache"
)

// Implements security provider.
type provider struct {
	auth   *basicAuthProvider
	logger common.ILoggerProvider
	users  []glob.Glob
	cache  *cache.Cache
}

// ConstructSecurityProvider has all data required for a new security provider.
type ConstructSecurityProvider struct {
	Logger     common.ILoggerProvider
	Secret     common.ISecretProvider
	ConfigsDir string
	Settings   *providers.RawSecuritySettings
}

// NewSecurityProvider constructs new security provider.
// If user patterns are configured, only matching users are allowed.
func NewSecurityProvider(ctor *ConstructSecurityProvider) providers.ISecurityProvider {
	log := logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: ctor.Logger,
		Provider:     "basic",
		System:       systems.SysSecurity.String(),
	})
	log.Info("Loading default user storage")

	prov := &provider{
		auth:   newBasicAuth(log, ctor.Secret, filepath.Join(ctor.ConfigsDir, UsersFileName)),
		logger: log,
		users:  make([]glob.Glob, 0),
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}

	if nil != ctor.Settings {
		prov.processUsers(ctor.Settings.Users)
	}

	return prov
}

// GetUser returns authenticated user name.
// Successful authorizations are cached, so bcrypt runs once per header.
func (p *provider) GetUser(headers map[string][]string) (string, error) {
	header, err := authHeader(headers)
	if err != nil {
		return "", err
	}

	key := cacheKey(header)
	if usr, ok := p.cache.Get(key); ok {
		return usr.(string), nil
	}

	usr, err := p.auth.authorize(header)
	if err != nil {
		return "", err
	}

	if !p.isAllowed(usr) {
		p.logger.Warn("User is not allowed", common.LogUserNameToken, usr)
		return "", &ErrUserNotAllowed{User: usr}
	}

	p.cache.Set(key, usr, cache.DefaultExpiration)
	return usr, nil
}

// Checks user against configured patterns.
func (p *provider) isAllowed(usr string) bool {
	if 0 == len(p.users) {
		return true
	}

	for _, v := range p.users {
		if v.Match(usr) {
			return true
		}
	}

	return false
}

// Pre-compiles configured user patterns.
func (p *provider) processUsers(users []string) {
	for _, v := range users {
		reg, err := glob.Compile(v)
		if err != nil {
			p.logger.Warn("Failed to compile user regexp", "regexp", v)
			continue
		}

		p.users = append(p.users, reg)
	}
}

// Header is hashed so raw credentials are not kept in memory.
func cacheKey(header string) string {
	sum := sha256.Sum256([]byte(header))
	return hex.EncodeToString(sum[:])
}
