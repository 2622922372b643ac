package sensor

import (
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
)

// BaseSensorName is used for keys without a known description.
const BaseSensorName = "base_sensor"

// Description describes how sensor key is presented.
type Description struct {
	Name        string
	Unit        string
	StateClass  enums.StateClass
	DeviceClass enums.DeviceClass
}

// Descriptions contains all known sensor keys.
var Descriptions = map[string]*Description{
	miner.SensorTemperature: {
		Name:        "Temperature",
		Unit:        enums.UnitCelsius,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassTemperature,
	},
	miner.SensorBoardTemperature: {
		Name:        "Board Temperature",
		Unit:        enums.UnitCelsius,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassTemperature,
	},
	miner.SensorChipTemperature: {
		Name:        "Chip Temperature",
		Unit:        enums.UnitCelsius,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassTemperature,
	},
	miner.SensorHashrate: {
		Name:        "Hashrate",
		Unit:        enums.UnitTeraHashPerSecond,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassHashrate,
	},
	miner.SensorIdealHashrate: {
		Name:        "Ideal Hashrate",
		Unit:        enums.UnitTeraHashPerSecond,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassHashrate,
	},
	miner.SensorBoardHashrate: {
		Name:        "Board Hashrate",
		Unit:        enums.UnitTeraHashPerSecond,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassHashrate,
	},
	miner.SensorPowerLimit: {
		Name:        "Power Limit",
		Unit:        enums.UnitWatt,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassPower,
	},
	miner.SensorMinerConsumption: {
		Name:        "Miner Consumption",
		Unit:        enums.UnitWatt,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassPower,
	},
	miner.SensorEfficiency: {
		Name:        "Efficiency",
		Unit:        enums.UnitJoulesPerTeraHash,
		StateClass:  enums.StateClassMeasurement,
		DeviceClass: enums.DeviceClassEfficiency,
	},
}

// GetDescription returns description of the key.
// Unknown keys get a generic description.
func GetDescription(key string) *Description {
	if d, ok := Descriptions[key]; ok {
		return d
	}

	return &Description{Name: BaseSensorName}
}

// UnitFor returns description unit in the desired unit system.
func (d *Description) UnitFor(uom enums.UOM) string {
	if d.DeviceClass == enums.DeviceClassTemperature {
		return uom.TemperatureUnit()
	}

	return d.Unit
}
