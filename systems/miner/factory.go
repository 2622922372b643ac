package miner

import (
	"context"
	"sync"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/helpers"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/providers"
	"github.com/pkg/errors"
)

// EfficiencyExpression calculates J/TH from consumption and hashrate.
const EfficiencyExpression = "miner_consumption / hashrate"

// Default interface timeout.
const defaultTimeout = 5 * time.Second

// Miners factory implementation.
type factory struct {
	logger     common.ILoggerProvider
	timeout    time.Duration
	ports      *ports
	efficiency helpers.ISensorExpression
	derived    map[string]helpers.ISensorExpression
}

// ConstructFactory has data required for a new miners factory.
// Zero ports fall back to the standard ones.
type ConstructFactory struct {
	Logger  common.ILoggerProvider
	Timeout time.Duration
	Derived map[string]string
	RPCPort int
	WebPort int
	SSHPort int
}

// Result of the interfaces detection.
type detectResult struct {
	rpc     bool
	version *rpcVersion
	boards  int
	web     bool
	info    *webSystemInfo
	ssh     bool
}

// NewFactory constructs a new miners factory.
// Derived sensors expressions are compiled once and shared by all miners.
func NewFactory(ctor *ConstructFactory) (providers.IMinerFactory, error) {
	parser := helpers.NewParser()
	efficiency, err := parser.Compile(EfficiencyExpression)
	if err != nil {
		return nil, errors.Wrap(err, "efficiency expression")
	}

	derived := make(map[string]helpers.ISensorExpression, len(ctor.Derived))
	for k, v := range ctor.Derived {
		exp, err := parser.Compile(v)
		if err != nil {
			return nil, errors.Wrapf(err, "derived sensor %s", k)
		}

		derived[k] = exp
	}

	f := &factory{
		logger:     ctor.Logger,
		timeout:    ctor.Timeout,
		efficiency: efficiency,
		derived:    derived,
		ports: &ports{
			rpc: orDefault(ctor.RPCPort, rpcPort),
			web: orDefault(ctor.WebPort, webPort),
			ssh: orDefault(ctor.SSHPort, sshPort),
		},
	}

	if f.timeout <= 0 {
		f.timeout = defaultTimeout
	}

	return f, nil
}

// Returns value or default if it's not set.
func orDefault(val int, def int) int {
	if val <= 0 {
		return def
	}

	return val
}

// GetMiner checks all interfaces concurrently.
// Nil miner is returned if neither RPC nor web interface responded.
func (f *factory) GetMiner(ctx context.Context, ip string) (miner.IMiner, error) {
	f.logger.Debug("Detecting miner", common.LogDeviceHostToken, ip)
	res := f.detect(ctx, ip)

	if !res.rpc && !res.web {
		f.logger.Info("Miner didn't respond", common.LogDeviceHostToken, ip)
		return nil, nil
	}

	m := &antMiner{
		ip:         ip,
		timeout:    f.timeout,
		logger:     f.logger,
		ports:      f.ports,
		boards:     defaultHashboards,
		efficiency: f.efficiency,
		derived:    f.derived,
	}

	if res.boards > 0 {
		m.boards = res.boards
	}

	if res.info != nil {
		m.make, m.model = splitType(res.info.MinerType)
	}

	if "" == m.make && res.version != nil {
		m.make, m.model = splitType(res.version.Type)
	}

	m.initCredentials(res.rpc, res.web, res.ssh)
	f.logger.Info("Miner found", common.LogDeviceHostToken, ip, "make", m.make, "model", m.model)
	return m, nil
}

// Detects interfaces.
func (f *factory) detect(ctx context.Context, ip string) *detectResult {
	res := &detectResult{}
	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		rpc := newRPCClient(address(ip, f.ports.rpc), f.timeout)
		v, err := rpc.version(ctx)
		if err != nil {
			return
		}

		res.rpc = true
		res.version = v
		data := miner.NewData()
		if err := rpc.stats(ctx, data); err == nil {
			res.boards = data.ExpectedHashboards
		}
	}()

	go func() {
		defer wg.Done()
		pwd := defaultWebPassword
		web := newWebClient(address(ip, f.ports.web),
			&miner.Credentials{Username: defaultWebUsername, Password: &pwd}, f.timeout)
		res.info, res.web = web.detect(ctx)
	}()

	go func() {
		defer wg.Done()
		res.ssh = portOpen(ctx, address(ip, f.ports.ssh), f.timeout)
	}()

	wg.Wait()
	return res
}
