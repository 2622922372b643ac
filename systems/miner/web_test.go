package miner

import (
	"context"
	"testing"
	"time"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates web client with credentials.
func testWebClient(port int, username, password string) *webClient {
	return newWebClient(address("127.0.0.1", port),
		&miner.Credentials{Username: username, Password: &password}, 2*time.Second)
}

// Tests system info with digest auth.
func TestWebSystemInfo(t *testing.T) {
	port, stop := fakeWeb(t, "root", "root", map[string]string{
		"/get_system_info.cgi": webSystemInfoResponse,
	})
	defer stop()

	info, err := testWebClient(port, "root", "root").systemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Antminer S9", info.MinerType)
	assert.Equal(t, "d0:7e:fa:11:22:33", info.MACAddr)
	assert.Equal(t, "antMiner", info.Hostname)
	assert.Equal(t, "Thu Jul 26 2018", info.FsVersion)
}

// Tests wrong credentials.
func TestWebWrongCredentials(t *testing.T) {
	port, stop := fakeWeb(t, "root", "secret", map[string]string{
		"/get_system_info.cgi": webSystemInfoResponse,
	})
	defer stop()

	c := testWebClient(port, "root", "root")
	_, err := c.systemInfo(context.Background())
	require.Error(t, err)
	e, ok := err.(*ErrUnexpectedStatus)
	require.True(t, ok)
	assert.Equal(t, 401, e.Status)

	info, responding := c.detect(context.Background())
	assert.Nil(t, info)
	assert.True(t, responding)
}

// Tests detection on a closed port.
func TestWebDetectClosed(t *testing.T) {
	_, responding := testWebClient(closedPort(t), "root", "root").detect(context.Background())
	assert.False(t, responding)
}

// Tests detection of a non-miner web server.
func TestWebDetectNotMiner(t *testing.T) {
	port, stop := fakeWeb(t, "root", "root", map[string]string{})
	defer stop()

	_, responding := testWebClient(port, "root", "root").detect(context.Background())
	assert.False(t, responding)
}

// Tests legacy miner status.
func TestWebFillLegacy(t *testing.T) {
	port, stop := fakeWeb(t, "root", "root", map[string]string{
		"/get_miner_status.cgi": webMinerStatusResponse,
		"/get_miner_conf.cgi":   webConfResponse,
	})
	defer stop()

	data := miner.NewData()
	require.NoError(t, testWebClient(port, "root", "root").fill(context.Background(), data))

	assert.Equal(t, miner.Float(13.501), data.MinerSensors[miner.SensorHashrate])
	assert.Equal(t, miner.Float(60), data.MinerSensors[miner.SensorTemperature])
	assert.Equal(t, miner.Float(1400), data.MinerSensors[miner.SensorPowerLimit])
	assert.Equal(t, 2, len(data.BoardSensors))
	assert.Equal(t, miner.Float(4.611), data.BoardSensors[0][miner.SensorBoardHashrate])
	assert.Equal(t, miner.Float(74), data.BoardSensors[0][miner.SensorChipTemperature])
	assert.Equal(t, miner.Float(60), data.BoardSensors[1][miner.SensorBoardTemperature])
}

// Tests newer stats endpoint.
func TestWebFillStats(t *testing.T) {
	port, stop := fakeWeb(t, "root", "root", map[string]string{
		"/stats.cgi": webStatsResponse,
	})
	defer stop()

	data := miner.NewData()
	require.NoError(t, testWebClient(port, "root", "root").fill(context.Background(), data))

	assert.Equal(t, 3, data.ExpectedHashboards)
	assert.Equal(t, miner.Float(95.013), data.MinerSensors[miner.SensorHashrate])
	assert.Equal(t, miner.Float(95), data.MinerSensors[miner.SensorIdealHashrate])
	assert.Equal(t, miner.Float(64), data.MinerSensors[miner.SensorTemperature])
	assert.Nil(t, data.MinerSensors[miner.SensorPowerLimit])
	assert.Equal(t, miner.Float(79), data.BoardSensors[1][miner.SensorChipTemperature])
	assert.Equal(t, miner.Float(31.671), data.BoardSensors[2][miner.SensorBoardHashrate])
}

// Tests firmware without any status endpoint.
func TestWebFillNoStatus(t *testing.T) {
	port, stop := fakeWeb(t, "root", "root", map[string]string{
		"/get_system_info.cgi": webSystemInfoResponse,
	})
	defer stop()

	assert.Error(t, testWebClient(port, "root", "root").fill(context.Background(), miner.NewData()))
}
