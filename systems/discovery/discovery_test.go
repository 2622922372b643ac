package discovery

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests CIDR parsing.
func TestParseCIDR(t *testing.T) {
	ips, err := ParseCIDR("192.168.1.0/24")
	require.NoError(t, err)
	assert.Equal(t, 254, len(ips))
	assert.Equal(t, "192.168.1.1", ips[0])
	assert.Equal(t, "192.168.1.254", ips[253])

	ips, err = ParseCIDR("10.0.0.5/30")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.5", "10.0.0.6"}, ips)

	ips, err = ParseCIDR("10.1.200.7/16")
	require.NoError(t, err)
	assert.Equal(t, 1022, len(ips))
	assert.Equal(t, "10.1.200.1", ips[0])
}

// Tests wrong networks.
func TestParseCIDRWrong(t *testing.T) {
	for _, v := range []string{"wrong", "10.0.0.1", "fe80::1/64"} {
		_, err := ParseCIDR(v)
		assert.Error(t, err, v)
	}
}

// Tests local networks listing.
func TestLocalNetworks(t *testing.T) {
	addrs := func() ([]net.Addr, error) {
		return []net.Addr{
			&net.IPNet{IP: net.ParseIP("192.168.1.15"), Mask: net.CIDRMask(24, 32)},
			&net.IPNet{IP: net.ParseIP("192.168.1.16"), Mask: net.CIDRMask(24, 32)},
			&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
			&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
			&net.IPAddr{IP: net.ParseIP("10.0.0.1")},
		}, nil
	}

	n, err := LocalNetworks(addrs)
	require.NoError(t, err)
	assert.Equal(t, []string{"192.168.1.0/24"}, n)

	_, err = LocalNetworks(func() ([]net.Addr, error) { return nil, errors.New("no adapters") })
	assert.Error(t, err)
}

// Starts local listener.
func listen(t *testing.T) (int, func()) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return l.Addr().(*net.TCPAddr).Port, func() { l.Close() } // nolint: errcheck
}

// Loopback network which is filtered out from adapters.
func loopback() ([]string, error) {
	return []string{"127.0.0.0/30"}, nil
}

// Tests scanning with open port.
func TestDiscover(t *testing.T) {
	port, stop := listen(t)
	defer stop()

	p := NewDiscoveryProvider(&ConstructDiscovery{
		Logger:   mocks.FakeNewLogger(nil),
		Factory:  mocks.FakeNewMinerFactory(mocks.FakeNewMiner("127.0.0.1", 3), nil),
		Ports:    []int{port},
		Timeout:  300 * time.Millisecond,
		Networks: loopback,
	})

	assert.Equal(t, []string{"127.0.0.1"}, p.Discover(context.Background()))
	assert.True(t, p.HasDevices(context.Background()))
}

// Tests direct network scan.
func TestScan(t *testing.T) {
	port, stop := listen(t)
	defer stop()

	factory := mocks.FakeNewMinerFactory(mocks.FakeNewMiner("127.0.0.1", 3), nil)
	p := NewDiscoveryProvider(&ConstructDiscovery{
		Logger:  mocks.FakeNewLogger(nil),
		Factory: factory,
		Ports:   []int{port},
		Timeout: 300 * time.Millisecond,
	}).(*provider)

	assert.Equal(t, []string{"127.0.0.1"}, p.Scan(context.Background(), "127.0.0.0/30", true))
	assert.Equal(t, 1, factory.Calls())
	assert.Nil(t, p.Scan(context.Background(), "wrong", false))
}

// Tests that loopback adapters are not scanned.
func TestDiscoverSkipsLoopback(t *testing.T) {
	port, stop := listen(t)
	defer stop()

	factory := mocks.FakeNewMinerFactory(mocks.FakeNewMiner("127.0.0.1", 3), nil)
	p := NewDiscoveryProvider(&ConstructDiscovery{
		Logger:  mocks.FakeNewLogger(nil),
		Factory: factory,
		Ports:   []int{port},
		Timeout: 300 * time.Millisecond,
		Addrs: func() ([]net.Addr, error) {
			return []net.Addr{&net.IPNet{IP: net.ParseIP("127.0.0.2").To4(), Mask: net.CIDRMask(30, 32)}}, nil
		},
	})

	assert.Empty(t, p.Discover(context.Background()))
	assert.Equal(t, 0, factory.Calls())
}

// Tests that open port without a miner is ignored.
func TestDiscoverNotMiner(t *testing.T) {
	port, stop := listen(t)
	defer stop()

	factory := mocks.FakeNewMinerFactory(nil, nil)
	p := NewDiscoveryProvider(&ConstructDiscovery{
		Logger:   mocks.FakeNewLogger(nil),
		Factory:  factory,
		Ports:    []int{port},
		Timeout:  300 * time.Millisecond,
		Networks: loopback,
	})

	assert.False(t, p.HasDevices(context.Background()))
	assert.Equal(t, 1, factory.Calls())
}

// Tests adapters failure.
func TestDiscoverNoAdapters(t *testing.T) {
	p := NewDiscoveryProvider(&ConstructDiscovery{
		Logger:  mocks.FakeNewLogger(nil),
		Factory: mocks.FakeNewMinerFactory(nil, nil),
		Addrs:   func() ([]net.Addr, error) { return nil, errors.New("fail") },
	})

	assert.Nil(t, p.Discover(context.Background()))
	assert.False(t, p.HasDevices(context.Background()))
}
