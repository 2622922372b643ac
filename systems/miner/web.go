package miner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/icholy/digest"
	"github.com/pkg/errors"
)

// Default web interface port.
const webPort = 80

// Stock firmware web interface client.
type webClient struct {
	baseURL string
	client  *http.Client
}

// Data returned by get_system_info.cgi.
type webSystemInfo struct {
	MinerType string `json:"minertype"`
	MACAddr   string `json:"macaddr"`
	Hostname  string `json:"hostname"`
	FsVersion string `json:"system_filesystem_version"`
	CGMiner   string `json:"cgminer_version"`
}

// Data returned by get_miner_status.cgi.
type webMinerStatus struct {
	Summary map[string]interface{}   `json:"summary"`
	Devs    []map[string]interface{} `json:"devs"`
}

// Data returned by stats.cgi on newer firmwares.
type webStats struct {
	Stats []struct {
		Rate5s    json.Number `json:"rate_5s"`
		RateIdeal json.Number `json:"rate_ideal"`
		RateUnit  string      `json:"rate_unit"`
		ChainNum  int         `json:"chain_num"`
		Chain     []struct {
			Index    int           `json:"index"`
			RateReal json.Number   `json:"rate_real"`
			TempPCB  []interface{} `json:"temp_pcb"`
			TempChip []interface{} `json:"temp_chip"`
		} `json:"chain"`
	} `json:"STATS"`
}

// Constructs a new web client.
func newWebClient(address string, creds *miner.Credentials, timeout time.Duration) *webClient {
	return &webClient{
		baseURL: fmt.Sprintf("http://%s/cgi-bin", address),
		client: &http.Client{
			Timeout: timeout,
			Transport: &digest.Transport{
				Username:  creds.Username,
				Password:  creds.PasswordOrEmpty(),
				Transport: http.DefaultTransport,
			},
		},
	}
}

// Performs GET request and decodes json response.
// Returns false if endpoint doesn't exist on this firmware.
func (w *webClient) request(ctx context.Context, endpoint string, result interface{}) (bool, error) {
	req, err := http.NewRequest(http.MethodGet, w.baseURL+endpoint, nil)
	if err != nil {
		return true, errors.Wrap(err, "failed to create request")
	}

	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := w.client.Do(req)
	if err != nil {
		return true, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode != http.StatusOK {
		return true, &ErrUnexpectedStatus{Endpoint: endpoint, Status: resp.StatusCode}
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return true, errors.Wrap(err, "failed to read response")
	}

	decoder := json.NewDecoder(bytes.NewReader(sanitize(body)))
	decoder.UseNumber()
	if err := decoder.Decode(result); err != nil {
		return true, errors.Wrapf(err, "failed to parse %s", endpoint)
	}

	return true, nil
}

// Requests system info.
func (w *webClient) systemInfo(ctx context.Context) (*webSystemInfo, error) {
	info := &webSystemInfo{}
	found, err := w.request(ctx, "/get_system_info.cgi", info)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, &ErrUnexpectedStatus{Endpoint: "/get_system_info.cgi", Status: http.StatusNotFound}
	}

	return info, nil
}

// Checks whether web interface responds at all.
// Rejected credentials still mean that interface exists.
func (w *webClient) detect(ctx context.Context) (*webSystemInfo, bool) {
	info, err := w.systemInfo(ctx)
	if err == nil {
		return info, true
	}

	if e, ok := errors.Cause(err).(*ErrUnexpectedStatus); ok && e.Status != http.StatusNotFound {
		return nil, true
	}

	return nil, false
}

// Fills telemetry snapshot from the web interface.
// stats.cgi is preferred, older firmwares expose get_miner_status.cgi only.
func (w *webClient) fill(ctx context.Context, data *miner.Data) error {
	stats := &webStats{}
	found, err := w.request(ctx, "/stats.cgi", stats)
	if err != nil {
		return err
	}

	if found && len(stats.Stats) > 0 {
		applyWebStats(stats, data)
	} else {
		status := &webMinerStatus{}
		found, err = w.request(ctx, "/get_miner_status.cgi", status)
		if err != nil {
			return err
		}

		if !found {
			return &ErrUnexpectedStatus{Endpoint: "/get_miner_status.cgi", Status: http.StatusNotFound}
		}

		applyWebStatus(status, data)
	}

	w.fillPowerLimit(ctx, data)
	return nil
}

// Reads configured power limit when firmware exposes it.
func (w *webClient) fillPowerLimit(ctx context.Context, data *miner.Data) {
	if data.MinerSensors[miner.SensorPowerLimit] != nil {
		return
	}

	conf := make(map[string]interface{})
	if found, err := w.request(ctx, "/get_miner_conf.cgi", &conf); err != nil || !found {
		return
	}

	data.MinerSensors[miner.SensorPowerLimit] = firstFloat(conf, "bitmain-power-limit", "power-limit")
}

// Applies stats.cgi response.
func applyWebStats(stats *webStats, data *miner.Data) {
	s := stats.Stats[0]
	data.MinerSensors[miner.SensorHashrate] = toTeraHash(toFloat(s.Rate5s), s.RateUnit)
	data.MinerSensors[miner.SensorIdealHashrate] = toTeraHash(toFloat(s.RateIdeal), s.RateUnit)
	if s.ChainNum > 0 {
		data.ExpectedHashboards = s.ChainNum
	}

	var minerTemp *float64
	for ii, c := range s.Chain {
		boardTemp := toFloat(c.TempPCB)
		data.SetBoardSensor(ii, miner.SensorBoardHashrate, toTeraHash(toFloat(c.RateReal), s.RateUnit))
		data.SetBoardSensor(ii, miner.SensorBoardTemperature, boardTemp)
		data.SetBoardSensor(ii, miner.SensorChipTemperature, toFloat(c.TempChip))
		minerTemp = maxFloat(minerTemp, boardTemp)
	}

	data.MinerSensors[miner.SensorTemperature] = minerTemp
}

// Applies get_miner_status.cgi response.
func applyWebStatus(status *webMinerStatus, data *miner.Data) {
	data.MinerSensors[miner.SensorHashrate] = toTeraHash(firstFloat(status.Summary, "ghs5s", "ghsav"), "GH/s")

	var minerTemp *float64
	board := 0
	for _, d := range status.Devs {
		rate := firstFloat(d, "chain_rate", "hashrate")
		if nil == rate {
			continue
		}

		boardTemp := firstFloat(d, "temp", "temperature")
		data.SetBoardSensor(board, miner.SensorBoardHashrate, toTeraHash(rate, "GH/s"))
		data.SetBoardSensor(board, miner.SensorBoardTemperature, boardTemp)
		data.SetBoardSensor(board, miner.SensorChipTemperature, firstFloat(d, "temp2", "temp_chip"))
		minerTemp = maxFloat(minerTemp, boardTemp)
		board++
	}

	data.MinerSensors[miner.SensorTemperature] = minerTemp
}
