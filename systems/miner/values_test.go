package miner

import (
	"encoding/json"
	"testing"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests raw values conversion.
func TestToFloat(t *testing.T) {
	data := []struct {
		in  interface{}
		out *float64
	}{
		{float64(12.5), miner.Float(12.5)},
		{3, miner.Float(3)},
		{json.Number("4611.30"), miner.Float(4611.30)},
		{"58", miner.Float(58)},
		{"58-61-60-59", miner.Float(61)},
		{"1350 W", miner.Float(1350)},
		{[]interface{}{json.Number("50"), json.Number("63"), "wrong"}, miner.Float(63)},
		{"", nil},
		{"n/a", nil},
		{nil, nil},
		{true, nil},
	}

	for k, v := range data {
		assert.Equal(t, v.out, toFloat(v.in), "%d", k)
	}
}

// Tests hashrate conversion.
func TestToTeraHash(t *testing.T) {
	assert.Equal(t, miner.Float(4.611), toTeraHash(miner.Float(4611.3), "GH/s"))
	assert.Equal(t, miner.Float(4.611), toTeraHash(miner.Float(4611.3), ""))
	assert.Equal(t, miner.Float(95.5), toTeraHash(miner.Float(95.5), "TH/s"))
	assert.Equal(t, miner.Float(13.5), toTeraHash(miner.Float(13500000), "MH/s"))
	assert.Nil(t, toTeraHash(nil, "GH/s"))
}

// Tests miner type parsing.
func TestSplitType(t *testing.T) {
	data := []struct {
		in    string
		make  string
		model string
	}{
		{"Antminer S9", "Antminer", "S9"},
		{"Antminer S19 Pro", "Antminer", "S19 Pro"},
		{"Whatsminer", "Whatsminer", ""},
		{"  ", "", ""},
	}

	for _, v := range data {
		mk, md := splitType(v.in)
		assert.Equal(t, v.make, mk, v.in)
		assert.Equal(t, v.model, md, v.in)
	}
}

// Tests sanitizing glued objects.
func TestSanitize(t *testing.T) {
	assert.Equal(t, `{"a":[{"b":1},{"c":2}]}`, string(sanitize([]byte("{\"a\":[{\"b\":1}{\"c\":2}]}\x00"))))
}

// Tests RPC stats parsing.
func TestParseRPCStats(t *testing.T) {
	data := miner.NewData()
	require.NoError(t, parseRPCStats(sanitize([]byte(rpcStatsResponse)), data))

	assert.Equal(t, 3, data.ExpectedHashboards)
	assert.Equal(t, 2, len(data.BoardSensors))
	assert.Equal(t, miner.Float(13.5), data.MinerSensors[miner.SensorIdealHashrate])
	assert.Equal(t, miner.Float(60), data.MinerSensors[miner.SensorTemperature])
	assert.Nil(t, data.MinerSensors[miner.SensorMinerConsumption])
	assert.Nil(t, data.MinerSensors[miner.SensorPowerLimit])

	assert.Equal(t, map[string]*float64{
		miner.SensorBoardHashrate:    miner.Float(4.611),
		miner.SensorBoardTemperature: miner.Float(58),
		miner.SensorChipTemperature:  miner.Float(74),
	}, data.BoardSensors[0])
	assert.Equal(t, miner.Float(4.501), data.BoardSensors[1][miner.SensorBoardHashrate])
	assert.Equal(t, miner.Float(76), data.BoardSensors[1][miner.SensorChipTemperature])
}

// Tests stats without chain data.
func TestParseRPCStatsNoChains(t *testing.T) {
	raw := []byte(`{"STATUS":[{"STATUS":"S"}],"STATS":[{"Type":"Antminer S9"}],"id":1}`)
	assert.Error(t, parseRPCStats(raw, miner.NewData()))
}

// Tests indexed keys discovery.
func TestIndexedKeys(t *testing.T) {
	obj := map[string]interface{}{
		"chain_rate8":     "",
		"chain_rate10":    "",
		"chain_rate6":     "",
		"chain_rateideal": "",
		"temp6":           1,
	}

	assert.Equal(t, []int{6, 8, 10}, indexedKeys(obj, "chain_rate"))
}
