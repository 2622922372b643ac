// Package storage contains in-memory entity state history.
package storage

import (
	"sync"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/logger"
	"github.com/gobwas/glob"
	"github.com/patrickmn/go-cache"
)

// Retention is a period of time history is kept for.
const Retention = 24 * time.Hour

// Storage provider.
type provider struct {
	sync.Mutex
	history  *cache.Cache
	logger   common.ILoggerProvider
	settings *settings
	now      func() time.Time
}

// Provider settings.
type settings struct {
	excludeExp []glob.Glob
	includeExp []glob.Glob
}

// ConstructStorage has data required for a new storage provider.
type ConstructStorage struct {
	PluginLogger common.ILoggerProvider
	Settings     *providers.RawStorageSettings
}

// NewStorageProvider returns a new storage provider.
// Entity is stored unless it matches an exclude expression. If include
// expressions are configured, entity must match one of them as well.
func NewStorageProvider(ctor *ConstructStorage) providers.IStorageProvider {
	log := logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: ctor.PluginLogger,
		System:       systems.SysStorage.String(),
	})
	log.Debug("Loading storage provider")

	s := &settings{
		excludeExp: make([]glob.Glob, 0),
		includeExp: make([]glob.Glob, 0),
	}

	raw := ctor.Settings
	if nil == raw {
		raw = &providers.RawStorageSettings{}
	}

	s.excludeExp = compile(log, "exclude", raw.Exclude)
	s.includeExp = compile(log, "include", raw.Include)

	return &provider{
		history:  cache.New(Retention, time.Hour),
		logger:   log,
		settings: s,
		now:      time.Now,
	}
}

// Compiles list of glob expressions, broken ones are skipped.
func compile(log common.ILoggerProvider, kind string, exps []string) []glob.Glob {
	res := make([]glob.Glob, 0, len(exps))
	for _, v := range exps {
		g, err := glob.Compile(v)
		if err != nil {
			log.Warn("Failed to compile "+kind+" expression", common.LogNameToken, v)
			continue
		}

		res = append(res, g)
	}

	return res
}

// State stores a new state entry.
func (s *provider) State(msg *common.MsgEntityUpdate) {
	if nil == msg || !s.needToSave(msg.ID) {
		return
	}

	s.Lock()
	defer s.Unlock()

	var points []*point
	if v, ok := s.history.Get(msg.ID); ok {
		points = v.([]*point)
	}

	points = appendPoint(points, toPoint(msg))
	points = trim(points, s.now().Add(-Retention).Unix())
	s.history.SetDefault(msg.ID, points)
}

// History returns entity state history for the past 24 hrs.
func (s *provider) History(entityID string) map[int64]*float64 {
	s.Lock()
	defer s.Unlock()

	result := make(map[int64]*float64)
	v, ok := s.history.Get(entityID)
	if !ok {
		return result
	}

	from := s.now().Add(-Retention).Unix()
	for _, p := range v.([]*point) {
		if p.timestamp < from {
			continue
		}

		result[p.timestamp] = fromPoint(p)
	}

	return result
}

func (s *provider) needToSave(entityID string) bool {
	for _, v := range s.settings.excludeExp {
		if v.Match(entityID) {
			return false
		}
	}

	if 0 == len(s.settings.includeExp) {
		return true
	}

	for _, v := range s.settings.includeExp {
		if v.Match(entityID) {
			return true
		}
	}

	return false
}
