package storage

import (
	"testing"
	"time"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates provider with a fixed clock.
func getProvider(settings *providers.RawStorageSettings, now time.Time) *provider {
	p := NewStorageProvider(&ConstructStorage{
		PluginLogger: mocks.FakeNewLogger(nil),
		Settings:     settings,
	}).(*provider)
	p.now = func() time.Time { return now }
	return p
}

// Tests that nil settings and nil messages are not causing panic.
func TestEmptyStorage(t *testing.T) {
	defer func() {
		assert.Nil(t, recover(), "panic")
	}()

	p := NewStorageProvider(&ConstructStorage{PluginLogger: mocks.FakeNewLogger(nil)})
	p.State(nil)
	assert.Equal(t, 0, len(p.History("test")))
}

// Tests history retention.
func TestHistory(t *testing.T) {
	now := time.Unix(1000000, 0)
	p := getProvider(nil, now)

	old := now.Add(-25 * time.Hour).Unix()
	p.State(&common.MsgEntityUpdate{ID: "aa-hashrate", Timestamp: old, Value: miner.Float(1)})
	p.State(&common.MsgEntityUpdate{ID: "aa-hashrate", Timestamp: now.Unix() - 10, Value: miner.Float(2)})
	p.State(&common.MsgEntityUpdate{ID: "aa-hashrate", Timestamp: now.Unix(), Value: nil})

	h := p.History("aa-hashrate")
	require.Equal(t, 2, len(h))
	assert.Equal(t, 2.0, *h[now.Unix()-10])
	v, ok := h[now.Unix()]
	assert.True(t, ok)
	assert.Nil(t, v)
}

// Tests include and exclude expressions.
func TestFilters(t *testing.T) {
	data := []struct {
		settings *providers.RawStorageSettings
		id       string
		saved    bool
	}{
		{nil, "aa-hashrate", true},
		{&providers.RawStorageSettings{Exclude: []string{"*-0-*"}}, "aa-0-board_hashrate", false},
		{&providers.RawStorageSettings{Exclude: []string{"*-0-*"}}, "aa-1-board_hashrate", true},
		{&providers.RawStorageSettings{Include: []string{"*hashrate"}}, "aa-hashrate", true},
		{&providers.RawStorageSettings{Include: []string{"*hashrate"}}, "aa-temperature", false},
		{&providers.RawStorageSettings{Include: []string{"*hashrate"}, Exclude: []string{"*ideal*"}},
			"aa-ideal_hashrate", false},
		{&providers.RawStorageSettings{Include: []string{"[", "*"}}, "aa-power_limit", true},
	}

	now := time.Unix(1000000, 0)
	for _, v := range data {
		p := getProvider(v.settings, now)
		p.State(&common.MsgEntityUpdate{ID: v.id, Timestamp: now.Unix(), Value: miner.Float(1)})
		assert.Equal(t, v.saved, 1 == len(p.History(v.id)), v.id)
	}
}

// Tests that repeated values are compacted.
func TestCompaction(t *testing.T) {
	now := time.Unix(1000000, 0)
	p := getProvider(nil, now)

	for ii := int64(0); ii < 5; ii++ {
		p.State(&common.MsgEntityUpdate{ID: "x", Timestamp: now.Unix() - 100 + ii, Value: miner.Float(3)})
	}
	p.State(&common.MsgEntityUpdate{ID: "x", Timestamp: now.Unix(), Value: miner.Float(4)})

	h := p.History("x")
	assert.Equal(t, 3, len(h))
	assert.NotNil(t, h[now.Unix()-100])
	assert.NotNil(t, h[now.Unix()-96])
	assert.Equal(t, 4.0, *h[now.Unix()])
}
