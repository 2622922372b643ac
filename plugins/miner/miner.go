// Package miner contains miner object model definitions shared by all minerhub systems.
package miner

import (
	"context"
	"reflect"
)

// IMiner defines a single ASIC miner reachable through one or more management interfaces.
type IMiner interface {
	IP() string
	Make() string
	Model() string
	RPC() *Credentials
	Web() *Credentials
	SSH() *Credentials
	ExpectedHashboards() int
	SetCredentials(*EntryCredentials)
	Hostname(ctx context.Context) (string, error)
	Data(ctx context.Context) (*Data, error)
}

// Credentials describes access data of a single management interface.
// Nil Password means that interface doesn't use a password at all.
type Credentials struct {
	Username string
	Password *string
}

// PasswordOrEmpty returns configured password or an empty string.
func (c *Credentials) PasswordOrEmpty() string {
	if nil == c || nil == c.Password {
		return ""
	}

	return *c.Password
}

// EntryCredentials has user supplied credentials of web and SSH interfaces.
// Empty usernames and nil passwords keep interface defaults, empty password is a blank one.
type EntryCredentials struct {
	WebUsername string
	WebPassword *string
	SSHUsername string
	SSHPassword *string
}

// Data contains a single telemetry snapshot.
type Data struct {
	MAC                string                      `json:"mac"`
	Make               string                      `json:"make"`
	Model              string                      `json:"model"`
	FwVersion          string                      `json:"fw_ver"`
	Hostname           string                      `json:"hostname"`
	ExpectedHashboards int                         `json:"expected_hashboards"`
	MinerSensors       map[string]*float64         `json:"miner_sensors"`
	BoardSensors       map[int]map[string]*float64 `json:"board_sensors"`
}

// NewData constructs an empty telemetry snapshot with all miner-level keys present.
func NewData() *Data {
	d := &Data{
		MinerSensors: make(map[string]*float64, len(MinerSensorKeys)),
		BoardSensors: make(map[int]map[string]*float64),
	}

	for _, v := range MinerSensorKeys {
		d.MinerSensors[v] = nil
	}

	return d
}

// SetBoardSensor stores a single board sensor value.
func (d *Data) SetBoardSensor(board int, key string, value *float64) {
	b, ok := d.BoardSensors[board]
	if !ok {
		b = make(map[string]*float64)
		d.BoardSensors[board] = b
	}

	b[key] = value
}

// Float is a helper returning a pointer to the value.
func Float(v float64) *float64 {
	return &v
}

// String is a helper returning a pointer to the value.
func String(v string) *string {
	return &v
}

// Sensor keys.
const (
	// SensorTemperature describes miner temperature.
	SensorTemperature = "temperature"
	// SensorHashrate describes current miner hashrate.
	SensorHashrate = "hashrate"
	// SensorIdealHashrate describes nominal miner hashrate.
	SensorIdealHashrate = "ideal_hashrate"
	// SensorPowerLimit describes configured power limit.
	SensorPowerLimit = "power_limit"
	// SensorMinerConsumption describes current consumption.
	SensorMinerConsumption = "miner_consumption"
	// SensorEfficiency describes J/TH efficiency.
	SensorEfficiency = "efficiency"
	// SensorBoardTemperature describes hashboard PCB temperature.
	SensorBoardTemperature = "board_temperature"
	// SensorChipTemperature describes hashboard chip temperature.
	SensorChipTemperature = "chip_temperature"
	// SensorBoardHashrate describes hashboard hashrate.
	SensorBoardHashrate = "board_hashrate"
)

// MinerSensorKeys contains every miner-level key reported by default.
var MinerSensorKeys = []string{SensorTemperature, SensorHashrate, SensorIdealHashrate,
	SensorPowerLimit, SensorMinerConsumption, SensorEfficiency}

// BoardSensorKeys contains every board-level key reported by default.
var BoardSensorKeys = []string{SensorBoardTemperature, SensorChipTemperature, SensorBoardHashrate}

// TypeMiner is a syntax sugar around IMiner type.
var TypeMiner = reflect.TypeOf((*IMiner)(nil)).Elem()
