package miner

import (
	"context"
	"testing"
	"time"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates factory for local fake servers.
func testFactory(t *testing.T, rpc, web, ssh int, derived map[string]string) *factory {
	f, err := NewFactory(&ConstructFactory{
		Logger:  mocks.FakeNewLogger(nil),
		Timeout: 2 * time.Second,
		Derived: derived,
		RPCPort: rpc,
		WebPort: web,
		SSHPort: ssh,
	})
	require.NoError(t, err)
	return f.(*factory)
}

// Tests that nothing is returned if miner doesn't respond.
func TestGetMinerUnreachable(t *testing.T) {
	f := testFactory(t, closedPort(t), closedPort(t), closedPort(t), nil)
	m, err := f.GetMiner(context.Background(), "127.0.0.1")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

// Tests RPC only miner.
func TestGetMinerRPCOnly(t *testing.T) {
	port, stop := fakeRPC(t, rpcResponses)
	defer stop()

	m, err := testFactory(t, port, closedPort(t), closedPort(t), nil).GetMiner(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "127.0.0.1", m.IP())
	assert.Equal(t, "Antminer", m.Make())
	assert.Equal(t, "S9", m.Model())
	assert.Equal(t, 3, m.ExpectedHashboards())
	require.NotNil(t, m.RPC())
	assert.Nil(t, m.RPC().Password)
	assert.Nil(t, m.Web())
	assert.Nil(t, m.SSH())
}

// Tests web only miner with defaults.
func TestGetMinerWebOnly(t *testing.T) {
	port, stop := fakeWeb(t, "root", "root", map[string]string{
		"/get_system_info.cgi": webSystemInfoResponse,
	})
	defer stop()

	m, err := testFactory(t, closedPort(t), port, closedPort(t), nil).GetMiner(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Nil(t, m.RPC())
	require.NotNil(t, m.Web())
	assert.Equal(t, "root", m.Web().Username)
	assert.Equal(t, "root", m.Web().PasswordOrEmpty())
	assert.Equal(t, defaultHashboards, m.ExpectedHashboards())

	host, err := m.Hostname(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "antMiner", host)
}

// Tests that open SSH port is recognized.
func TestGetMinerWithSSH(t *testing.T) {
	rpc, stopRPC := fakeRPC(t, rpcResponses)
	defer stopRPC()
	ssh, stopSSH := fakeRPC(t, map[string]string{})
	defer stopSSH()

	m, err := testFactory(t, rpc, closedPort(t), ssh, nil).GetMiner(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NotNil(t, m.SSH())
	assert.Equal(t, "root", m.SSH().Username)
	assert.Equal(t, "admin", m.SSH().PasswordOrEmpty())
}

// Tests broken derived expressions.
func TestFactoryWrongDerived(t *testing.T) {
	_, err := NewFactory(&ConstructFactory{
		Logger:  mocks.FakeNewLogger(nil),
		Derived: map[string]string{"broken": "hashrate +* ("},
	})
	assert.Error(t, err)
}

// Tests defaults.
func TestFactoryDefaults(t *testing.T) {
	f, err := NewFactory(&ConstructFactory{Logger: mocks.FakeNewLogger(nil)})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, f.(*factory).timeout)
	assert.Equal(t, &ports{rpc: 4028, web: 80, ssh: 22}, f.(*factory).ports)
}
