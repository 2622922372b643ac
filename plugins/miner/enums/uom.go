package enums

import (
	"strings"

	"github.com/pkg/errors"
)

// UOM describes unit system.
type UOM int

const (
	// UOMMetric describes metric unit system.
	UOMMetric UOM = iota
	// UOMImperial describes imperial unit system.
	UOMImperial
)

// Measurement units.
const (
	// UnitCelsius describes celsius degrees.
	UnitCelsius = "°C"
	// UnitFahrenheit describes fahrenheit degrees.
	UnitFahrenheit = "°F"
	// UnitTeraHashPerSecond describes TH/s.
	UnitTeraHashPerSecond = "TH/s"
	// UnitWatt describes watts.
	UnitWatt = "W"
	// UnitJoulesPerTeraHash describes J/TH.
	UnitJoulesPerTeraHash = "J/TH"
)

// String returns unit system representation.
func (u UOM) String() string {
	if u == UOMImperial {
		return "imperial"
	}

	return "metric"
}

// UOMString converts string into unit system.
func UOMString(s string) (UOM, error) {
	switch strings.ToLower(s) {
	case "", "metric":
		return UOMMetric, nil
	case "imperial":
		return UOMImperial, nil
	}

	return UOMMetric, errors.Errorf("%s does not belong to UOM values", s)
}

// TemperatureUnit returns temperature unit for the unit system.
func (u UOM) TemperatureUnit() string {
	if u == UOMImperial {
		return UnitFahrenheit
	}

	return UnitCelsius
}
