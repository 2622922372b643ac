package entity

import (
	"github.com/go-home-io/minerhub/systems/sensor"
)

// View is a serializable entity state.
type View struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	EntryID     string             `json:"entry"`
	Value       *float64           `json:"value"`
	Unit        string             `json:"unit,omitempty"`
	DeviceClass string             `json:"device_class,omitempty"`
	StateClass  string             `json:"state_class,omitempty"`
	Available   bool               `json:"available"`
	ForceUpdate bool               `json:"force_update"`
	Device      *sensor.DeviceInfo `json:"device"`
}

// NewView captures current entity state.
func NewView(e sensor.IEntity) *View {
	d := e.Description()
	return &View{
		ID:          e.UniqueID(),
		Name:        e.Name(),
		EntryID:     e.EntryID(),
		Value:       e.Value(),
		Unit:        e.Unit(),
		DeviceClass: d.DeviceClass.String(),
		StateClass:  d.StateClass.String(),
		Available:   e.Available(),
		ForceUpdate: e.ForceUpdate(),
		Device:      e.DeviceInfo(),
	}
}
