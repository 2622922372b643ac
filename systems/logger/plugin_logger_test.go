package logger

import (
	"testing"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// Tests that every operation invoked correctly.
func TestPluginLogger(t *testing.T) {
	called := make(map[string]bool)

	ctor := &ConstructPluginLogger{
		Provider: "test",
		SystemLogger: mocks.FakeNewLogger(func(s string) {
			called[s] = true
		}),
		System: "test",
	}

	l := NewPluginLogger(ctor)
	l.Debug("Debug")
	l.Info("Info")
	l.Warn("Warn")
	l.Error("Error", errors.New(""))
	l.Fatal("Fatal", errors.New(""))

	for _, v := range []string{"Debug", "Info", "Warn", "Error", "Fatal"} {
		assert.True(t, called[v], v)
	}
}

// Tests that system fields are attached without touching caller's slice.
func TestPluginLoggerFields(t *testing.T) {
	rec := &recorder{}
	l := NewPluginLogger(&ConstructPluginLogger{
		SystemLogger: rec,
		System:       "coordinator",
		Provider:     "10.0.0.1",
	})

	in := make([]string, 2, 10)
	in[0], in[1] = common.LogEntryToken, "s9"
	l.Info("msg", in...)

	assert.Equal(t, []string{common.LogEntryToken, "s9", common.LogSystemToken, "coordinator",
		common.LogProviderToken, "10.0.0.1"}, rec.last)
	assert.Equal(t, []string{common.LogEntryToken, "s9"}, in)
}

// Tests that empty provider is skipped.
func TestPluginLoggerNoProvider(t *testing.T) {
	rec := &recorder{}
	l := NewPluginLogger(&ConstructPluginLogger{
		SystemLogger: rec,
		System:       "flow",
	})

	l.Warn("msg")
	assert.Equal(t, []string{common.LogSystemToken, "flow"}, rec.last)
}
