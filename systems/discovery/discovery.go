package discovery

import (
	"context"
	"net"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
)

// Default scan parameters.
const (
	defaultScanTimeout = 700 * time.Millisecond
	defaultConcurrency = 64
)

// Discovery provider implementation.
type provider struct {
	logger   common.ILoggerProvider
	factory  providers.IMinerFactory
	scanner  *portScanner
	ports    []int
	networks func() ([]string, error)
}

// ConstructDiscovery has data required for a new discovery provider.
type ConstructDiscovery struct {
	Logger      common.ILoggerProvider
	Factory     providers.IMinerFactory
	Ports       []int
	Timeout     time.Duration
	Concurrency int
	Addrs       func() ([]net.Addr, error)
	// Overrides adapters listing, networks are scanned as is.
	Networks func() ([]string, error)
}

// NewDiscoveryProvider constructs a new discovery provider.
func NewDiscoveryProvider(ctor *ConstructDiscovery) providers.IDiscoveryProvider {
	p := &provider{
		logger:   ctor.Logger,
		factory:  ctor.Factory,
		ports:    ctor.Ports,
		networks: ctor.Networks,
		scanner: &portScanner{
			timeout:     ctor.Timeout,
			concurrency: ctor.Concurrency,
		},
	}

	if 0 == len(p.ports) {
		p.ports = []int{4028, 80}
	}

	if nil == p.networks {
		addrs := ctor.Addrs
		if nil == addrs {
			addrs = interfaceAddrs
		}

		p.networks = func() ([]string, error) { return LocalNetworks(addrs) }
	}

	if p.scanner.timeout <= 0 {
		p.scanner.timeout = defaultScanTimeout
	}

	if p.scanner.concurrency <= 0 {
		p.scanner.concurrency = defaultConcurrency
	}

	return p
}

// HasDevices checks whether any local network contains a miner.
func (p *provider) HasDevices(ctx context.Context) bool {
	return len(p.discover(ctx, true)) > 0
}

// Discover returns IPs of all miners in local networks.
func (p *provider) Discover(ctx context.Context) []string {
	return p.discover(ctx, false)
}

// Scans local networks, optionally stopping at the first miner.
func (p *provider) discover(ctx context.Context, first bool) []string {
	networks, err := p.networks()
	if err != nil {
		p.logger.Error("Failed to list local networks", err)
		return nil
	}

	res := make([]string, 0)
	for _, n := range networks {
		found := p.Scan(ctx, n, first)
		res = append(res, found...)
		if first && len(res) > 0 {
			break
		}
	}

	return res
}

// Scan returns IPs of hosts in the network which answer as miners.
func (p *provider) Scan(ctx context.Context, cidr string, first bool) []string {
	hosts, err := ParseCIDR(cidr)
	if err != nil {
		p.logger.Warn("Skipping network", common.LogInterfaceToken, cidr, common.LogErrorToken, err.Error())
		return nil
	}

	p.logger.Debug("Scanning network", common.LogInterfaceToken, cidr)
	candidates := p.scanner.scan(ctx, hosts, p.ports)

	res := make([]string, 0)
	for _, ip := range candidates {
		m, err := p.factory.GetMiner(ctx, ip)
		if err != nil || nil == m {
			continue
		}

		p.logger.Info("Discovered miner", common.LogDeviceHostToken, ip)
		res = append(res, ip)
		if first {
			break
		}
	}

	return res
}
