// Package enums contains various enumerations used by sensor entities.
package enums

// DeviceClass describes the kind of measured value.
type DeviceClass string

const (
	// DeviceClassNone describes generic sensor.
	DeviceClassNone DeviceClass = ""
	// DeviceClassTemperature describes temperature sensor.
	DeviceClassTemperature DeviceClass = "temperature"
	// DeviceClassPower describes power sensor.
	DeviceClassPower DeviceClass = "power"
	// DeviceClassHashrate describes hashrate sensor.
	DeviceClassHashrate DeviceClass = "hashrate"
	// DeviceClassEfficiency describes efficiency sensor.
	DeviceClassEfficiency DeviceClass = "efficiency"
)

// String returns device class representation.
func (d DeviceClass) String() string {
	return string(d)
}

// StateClass describes how state should be treated by history.
type StateClass string

const (
	// StateClassNone describes sensor without state class.
	StateClassNone StateClass = ""
	// StateClassMeasurement describes instantaneous measurement.
	StateClassMeasurement StateClass = "measurement"
)

// String returns state class representation.
func (s StateClass) String() string {
	return string(s)
}
