// Package miner implements ASIC miners communication over RPC, web and SSH interfaces.
package miner

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/helpers"
	"github.com/go-home-io/minerhub/plugins/miner"
)

// Default credentials of the stock firmware.
const (
	defaultWebUsername = "root"
	defaultWebPassword = "root"
	defaultSSHUsername = "root"
	defaultSSHPassword = "admin"
)

// Hashboards count used when miner doesn't report it.
const defaultHashboards = 3

// Miner implementation.
type antMiner struct {
	sync.Mutex

	ip      string
	make    string
	model   string
	timeout time.Duration
	logger  common.ILoggerProvider
	ports   *ports

	boards int

	rpcCreds *miner.Credentials
	webCreds *miner.Credentials
	sshCreds *miner.Credentials

	rpc *rpcClient
	web *webClient
	ssh *sshClient

	efficiency helpers.ISensorExpression
	derived    map[string]helpers.ISensorExpression
}

// Interfaces ports.
type ports struct {
	rpc int
	web int
	ssh int
}

// Joins host and port.
func address(ip string, port int) string {
	return net.JoinHostPort(ip, strconv.Itoa(port))
}

// Constructs default credentials of the available interfaces.
func (m *antMiner) initCredentials(hasRPC, hasWeb, hasSSH bool) {
	if hasRPC {
		m.rpcCreds = &miner.Credentials{}
	}

	if hasWeb {
		pwd := defaultWebPassword
		m.webCreds = &miner.Credentials{Username: defaultWebUsername, Password: &pwd}
	}

	if hasSSH {
		pwd := defaultSSHPassword
		m.sshCreds = &miner.Credentials{Username: defaultSSHUsername, Password: &pwd}
	}

	m.rebuildClients()
}

// Re-creates clients with the current credentials.
func (m *antMiner) rebuildClients() {
	if m.rpcCreds != nil {
		m.rpc = newRPCClient(address(m.ip, m.ports.rpc), m.timeout)
	}

	if m.webCreds != nil {
		m.web = newWebClient(address(m.ip, m.ports.web), m.webCreds, m.timeout)
	}

	if m.sshCreds != nil {
		m.ssh = newSSHClient(address(m.ip, m.ports.ssh), m.sshCreds, m.timeout)
	}
}

// IP returns miner address.
func (m *antMiner) IP() string {
	return m.ip
}

// Make returns miner manufacturer.
func (m *antMiner) Make() string {
	return m.make
}

// Model returns miner model.
func (m *antMiner) Model() string {
	return m.model
}

// RPC returns RPC interface credentials or nil if interface is absent.
func (m *antMiner) RPC() *miner.Credentials {
	m.Lock()
	defer m.Unlock()
	return m.rpcCreds
}

// Web returns web interface credentials or nil if interface is absent.
func (m *antMiner) Web() *miner.Credentials {
	m.Lock()
	defer m.Unlock()
	return m.webCreds
}

// SSH returns SSH interface credentials or nil if interface is absent.
func (m *antMiner) SSH() *miner.Credentials {
	m.Lock()
	defer m.Unlock()
	return m.sshCreds
}

// ExpectedHashboards returns number of hashboards miner should have.
func (m *antMiner) ExpectedHashboards() int {
	m.Lock()
	defer m.Unlock()
	return m.boards
}

// SetCredentials applies user supplied credentials.
// Absent interfaces are skipped. Stock cgminer API has no authentication,
// so RPC credentials are never changed.
func (m *antMiner) SetCredentials(c *miner.EntryCredentials) {
	if nil == c {
		return
	}

	m.Lock()
	defer m.Unlock()

	m.webCreds = mergeCredentials(m.webCreds, c.WebUsername, c.WebPassword)
	m.sshCreds = mergeCredentials(m.sshCreds, c.SSHUsername, c.SSHPassword)
	m.rebuildClients()
}

// Merges interface credentials.
// Nil password keeps the current one.
func mergeCredentials(creds *miner.Credentials, username string, password *string) *miner.Credentials {
	if nil == creds {
		return nil
	}

	res := &miner.Credentials{Username: creds.Username, Password: creds.Password}
	if username != "" {
		res.Username = username
	}

	if nil != password {
		pwd := *password
		res.Password = &pwd
	}

	return res
}

// Returns current clients.
func (m *antMiner) clients() (*rpcClient, *webClient, *sshClient) {
	m.Lock()
	defer m.Unlock()
	return m.rpc, m.web, m.ssh
}

// Hostname returns miner hostname.
// Web interface is asked first, SSH is a fallback.
func (m *antMiner) Hostname(ctx context.Context) (string, error) {
	_, web, ssh := m.clients()
	if web != nil {
		info, err := web.systemInfo(ctx)
		if err == nil && info.Hostname != "" {
			return info.Hostname, nil
		}
	}

	if ssh != nil {
		host, err := ssh.hostname(ctx)
		if err == nil && host != "" {
			return host, nil
		}
	}

	return "", &ErrNoHostname{}
}

// Data returns a fresh telemetry snapshot.
// RPC is the primary source, web fills identity and substitutes missing telemetry,
// SSH is used only for missing hostname or MAC.
func (m *antMiner) Data(ctx context.Context) (*miner.Data, error) {
	rpc, web, ssh := m.clients()

	data := miner.NewData()
	data.Make = m.make
	data.Model = m.model
	data.ExpectedHashboards = m.ExpectedHashboards()

	reachable := false
	telemetry := false

	if rpc != nil {
		if err := rpc.fill(ctx, data); err != nil {
			m.logger.Debug("RPC interface failed", common.LogDeviceHostToken, m.ip,
				common.LogErrorToken, err.Error())
		} else {
			reachable = true
			telemetry = true
		}
	}

	if web != nil {
		if info, err := web.systemInfo(ctx); err != nil {
			m.logger.Debug("Web interface failed", common.LogDeviceHostToken, m.ip,
				common.LogErrorToken, err.Error())
		} else {
			reachable = true
			applySystemInfo(info, data)
		}

		if !telemetry {
			if err := web.fill(ctx, data); err != nil {
				m.logger.Debug("Web telemetry failed", common.LogDeviceHostToken, m.ip,
					common.LogErrorToken, err.Error())
			} else {
				reachable = true
				telemetry = true
			}
		}
	}

	if !reachable {
		return nil, &ErrUnreachable{IP: m.ip}
	}

	if !telemetry {
		return nil, &ErrNoData{IP: m.ip}
	}

	if ssh != nil {
		m.fillFromSSH(ctx, ssh, data)
	}

	if "" == data.MAC {
		m.logger.Warn("MAC address is unknown, using IP instead", common.LogDeviceHostToken, m.ip)
		data.MAC = m.ip
	}

	m.Lock()
	m.boards = data.ExpectedHashboards
	m.Unlock()

	m.derive(data)
	return data, nil
}

// Fills identity from system info.
func applySystemInfo(info *webSystemInfo, data *miner.Data) {
	data.MAC = normalizeMAC(info.MACAddr)
	data.Hostname = info.Hostname
	if info.FsVersion != "" {
		data.FwVersion = info.FsVersion
	}

	if mk, md := splitType(info.MinerType); mk != "" {
		data.Make = mk
		data.Model = md
	}
}

// Fills missing identity over SSH.
func (m *antMiner) fillFromSSH(ctx context.Context, ssh *sshClient, data *miner.Data) {
	if "" == data.Hostname {
		if host, err := ssh.hostname(ctx); err == nil {
			data.Hostname = host
		} else {
			m.logger.Debug("SSH hostname failed", common.LogDeviceHostToken, m.ip,
				common.LogErrorToken, err.Error())
		}
	}

	if "" == data.MAC {
		if mac, err := ssh.mac(ctx); err == nil {
			data.MAC = normalizeMAC(mac)
		} else {
			m.logger.Debug("SSH MAC failed", common.LogDeviceHostToken, m.ip,
				common.LogErrorToken, err.Error())
		}
	}
}

// Calculates efficiency and user derived sensors.
func (m *antMiner) derive(data *miner.Data) {
	if nil == data.MinerSensors[miner.SensorEfficiency] && m.efficiency != nil {
		v, err := m.efficiency.Evaluate(data.MinerSensors)
		if err != nil {
			m.logger.Debug("Failed to calculate efficiency", common.LogDeviceHostToken, m.ip,
				common.LogErrorToken, err.Error())
		} else if v != nil {
			r := roundTo(*v, 2)
			v = &r
		}

		data.MinerSensors[miner.SensorEfficiency] = v
	}

	for k, exp := range m.derived {
		v, err := exp.Evaluate(data.MinerSensors)
		if err != nil {
			m.logger.Warn("Failed to calculate derived sensor", common.LogSensorToken, k,
				common.LogDeviceHostToken, m.ip, common.LogErrorToken, err.Error())
		}

		data.MinerSensors[k] = v
	}
}
