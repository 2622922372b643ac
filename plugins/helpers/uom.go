package helpers

import (
	"math"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
)

// List of sensors, which needs to be converted.
var convertRequired = []string{
	miner.SensorTemperature, miner.SensorBoardTemperature, miner.SensorChipTemperature,
}

// IsConversionRequired checks whether sensor depends on the unit system.
func IsConversionRequired(sensor string) bool {
	for _, v := range convertRequired {
		if v == sensor {
			return true
		}
	}

	return false
}

// UOMConvert converts a metric sensor value into the desired unit system.
func UOMConvert(value *float64, sensor string, desiredUOM enums.UOM) *float64 {
	if nil == value || desiredUOM == enums.UOMMetric || !IsConversionRequired(sensor) {
		return value
	}

	return miner.Float(round(*value*9/5 + 32))
}

// UOMConvertData converts every sensor of the telemetry snapshot in place.
func UOMConvertData(data *miner.Data, desiredUOM enums.UOM) {
	if nil == data || desiredUOM == enums.UOMMetric {
		return
	}

	for k, v := range data.MinerSensors {
		data.MinerSensors[k] = UOMConvert(v, k, desiredUOM)
	}

	for _, b := range data.BoardSensors {
		for k, v := range b {
			b[k] = UOMConvert(v, k, desiredUOM)
		}
	}
}

// Rounds to 2 decimal points.
func round(val float64) float64 {
	return math.Round(val*100) / 100
}
