package miner

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/pkg/errors"
	cg "github.com/x1unix/go-cgminer-api"
)

// Default cgminer API port.
const rpcPort = 4028

// Stats objects scanned while looking for chain data.
const maxStatsObjects = 4

// cgminer RPC interface client.
type rpcClient struct {
	client *cg.CGMiner
}

// Reported version.
type rpcVersion struct {
	Type      string
	FwVersion string
}

// Constructs a new RPC client.
func newRPCClient(address string, timeout time.Duration) *rpcClient {
	return &rpcClient{
		client: &cg.CGMiner{
			Address:   address,
			Timeout:   timeout,
			Transport: cg.NewJSONTransport(),
			Dialer:    &net.Dialer{Timeout: timeout},
		},
	}
}

// Performs a single raw call.
// Raw payload is used since firmwares disagree on field types.
func (r *rpcClient) call(ctx context.Context, command string) ([]byte, error) {
	raw, err := r.client.RawCall(ctx, cg.NewCommandWithoutParameter(command))
	if err != nil {
		return nil, errors.Wrapf(err, "rpc %s failed", command)
	}

	return sanitize(raw), nil
}

// Requests miner version.
func (r *rpcClient) version(ctx context.Context) (*rpcVersion, error) {
	raw, err := r.call(ctx, "version")
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(raw, ".VERSION.[0]")
	if err != nil {
		return nil, err
	}

	v := &rpcVersion{
		Type: toString(obj["Type"]),
	}

	for _, k := range []string{"CompileTime", "BMMiner", "CGMiner", "Miner"} {
		if s := toString(obj[k]); s != "" {
			v.FwVersion = s
			break
		}
	}

	return v, nil
}

// Requests current hashrate in TH/s.
func (r *rpcClient) hashrate(ctx context.Context) (*float64, error) {
	raw, err := r.call(ctx, "summary")
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(raw, ".SUMMARY.[0]")
	if err != nil {
		return nil, err
	}

	if v := firstFloat(obj, "GHS 5s", "GHS av"); v != nil {
		return toTeraHash(v, "GH/s"), nil
	}

	return toTeraHash(firstFloat(obj, "MHS 5s", "MHS av"), "MH/s"), nil
}

// Requests chain statistics.
func (r *rpcClient) stats(ctx context.Context, data *miner.Data) error {
	raw, err := r.call(ctx, "stats")
	if err != nil {
		return err
	}

	return parseRPCStats(raw, data)
}

// Fills telemetry snapshot with everything RPC interface knows.
func (r *rpcClient) fill(ctx context.Context, data *miner.Data) error {
	if err := r.stats(ctx, data); err != nil {
		return err
	}

	hr, err := r.hashrate(ctx)
	if err != nil {
		return err
	}

	data.MinerSensors[miner.SensorHashrate] = hr

	v, err := r.version(ctx)
	if err != nil {
		return err
	}

	if "" == data.FwVersion {
		data.FwVersion = v.FwVersion
	}

	return nil
}

// Parses raw stats document.
// Present chains are numbered in the order of their chain index.
func parseRPCStats(raw []byte, data *miner.Data) error {
	var chains map[string]interface{}
	for ii := 0; ii < maxStatsObjects; ii++ {
		obj, err := decodeObject(raw, fmt.Sprintf(".STATS.[%d]", ii))
		if err != nil {
			break
		}

		if _, ok := obj["miner_count"]; ok || len(indexedKeys(obj, "chain_rate")) > 0 {
			chains = obj
			break
		}
	}

	if nil == chains {
		return errors.New("chain statistics not found")
	}

	if v := toFloat(chains["miner_count"]); v != nil && *v > 0 {
		data.ExpectedHashboards = int(*v)
	}

	data.MinerSensors[miner.SensorIdealHashrate] = toTeraHash(
		firstFloat(chains, "total_rateideal", "rate_ideal"), "GH/s")

	var minerTemp *float64
	board := 0
	for _, n := range indexedKeys(chains, "chain_rate") {
		rate := toFloat(chains[fmt.Sprintf("chain_rate%d", n)])
		if nil == rate {
			continue
		}

		boardTemp := firstFloat(chains, fmt.Sprintf("temp_pcb%d", n), fmt.Sprintf("temp%d", n))
		chipTemp := firstFloat(chains, fmt.Sprintf("temp_chip%d", n), fmt.Sprintf("temp2_%d", n))

		data.SetBoardSensor(board, miner.SensorBoardHashrate, toTeraHash(rate, "GH/s"))
		data.SetBoardSensor(board, miner.SensorBoardTemperature, boardTemp)
		data.SetBoardSensor(board, miner.SensorChipTemperature, chipTemp)
		minerTemp = maxFloat(minerTemp, boardTemp)
		board++
	}

	data.MinerSensors[miner.SensorTemperature] = minerTemp
	data.MinerSensors[miner.SensorMinerConsumption] = firstFloat(chains, "chain_power", "Power", "power")
	data.MinerSensors[miner.SensorPowerLimit] = firstFloat(chains, "power_limit", "Power_Limit")
	return nil
}
