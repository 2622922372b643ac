// Package sensor creates miner sensor entities.
package sensor

import (
	"fmt"

	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
	"github.com/go-home-io/minerhub/systems/coordinator"
)

// IEntity defines a single sensor entity.
type IEntity interface {
	UniqueID() string
	Name() string
	EntryID() string
	Value() *float64
	Unit() string
	Description() *Description
	ForceUpdate() bool
	Available() bool
	DeviceInfo() *DeviceInfo
	Coordinator() coordinator.ICoordinator
}

// DeviceInfo describes a physical miner which entities belong to.
type DeviceInfo struct {
	Identifiers  [][2]string `json:"identifiers"`
	Manufacturer string      `json:"manufacturer"`
	Model        string      `json:"model"`
	SwVersion    string      `json:"sw_version"`
	Name         string      `json:"name"`
}

// Shared entity data.
type baseEntity struct {
	coordinator coordinator.ICoordinator
	description *Description
	uom         enums.UOM
	uniqueID    string
}

// MinerSensor is a miner level sensor.
type MinerSensor struct {
	baseEntity
	key string
}

// MinerBoardSensor is a hashboard level sensor.
type MinerBoardSensor struct {
	baseEntity
	board  int
	sensor string
}

// NewMinerSensor constructs a new miner level sensor.
// Unique ID is bound to the MAC of the current snapshot.
func NewMinerSensor(c coordinator.ICoordinator, key string, uom enums.UOM) *MinerSensor {
	return &MinerSensor{
		baseEntity: baseEntity{
			coordinator: c,
			description: GetDescription(key),
			uom:         uom,
			uniqueID:    fmt.Sprintf("%s-%s", mac(c), key),
		},
		key: key,
	}
}

// NewMinerBoardSensor constructs a new hashboard level sensor.
func NewMinerBoardSensor(c coordinator.ICoordinator, board int, sensor string, uom enums.UOM) *MinerBoardSensor {
	return &MinerBoardSensor{
		baseEntity: baseEntity{
			coordinator: c,
			description: GetDescription(sensor),
			uom:         uom,
			uniqueID:    fmt.Sprintf("%s-%d-%s", mac(c), board, sensor),
		},
		board:  board,
		sensor: sensor,
	}
}

// Returns MAC of the latest snapshot.
func mac(c coordinator.ICoordinator) string {
	if d := c.Data(); d != nil {
		return d.MAC
	}

	return ""
}

// UniqueID returns entity unique ID.
func (e *baseEntity) UniqueID() string {
	return e.uniqueID
}

// EntryID returns config entry ID.
func (e *baseEntity) EntryID() string {
	return e.coordinator.EntryID()
}

// Unit returns measurement unit.
func (e *baseEntity) Unit() string {
	return e.description.UnitFor(e.uom)
}

// Description returns entity description.
func (e *baseEntity) Description() *Description {
	return e.description
}

// ForceUpdate is always set, every refresh produces a state update.
func (e *baseEntity) ForceUpdate() bool {
	return true
}

// Available returns whether the latest refresh succeeded.
func (e *baseEntity) Available() bool {
	return e.coordinator.LastUpdateSuccess()
}

// Coordinator returns entity coordinator.
func (e *baseEntity) Coordinator() coordinator.ICoordinator {
	return e.coordinator
}

// DeviceInfo returns miner device info.
func (e *baseEntity) DeviceInfo() *DeviceInfo {
	d := e.coordinator.Data()
	if nil == d {
		return &DeviceInfo{Name: e.coordinator.Title()}
	}

	return &DeviceInfo{
		Identifiers:  [][2]string{{miner.Domain, d.MAC}},
		Manufacturer: d.Make,
		Model:        d.Model,
		SwVersion:    d.FwVersion,
		Name:         e.coordinator.Title(),
	}
}

// Name returns entity name.
func (s *MinerSensor) Name() string {
	return fmt.Sprintf("%s %s", s.coordinator.Title(), s.description.Name)
}

// Key returns sensor key.
func (s *MinerSensor) Key() string {
	return s.key
}

// Value returns the latest value or nil if it's unknown.
func (s *MinerSensor) Value() *float64 {
	d := s.coordinator.Data()
	if nil == d {
		return nil
	}

	return d.MinerSensors[s.key]
}

// Name returns entity name.
func (s *MinerBoardSensor) Name() string {
	return fmt.Sprintf("%s Board #%d %s", s.coordinator.Title(), s.board, s.description.Name)
}

// Board returns hashboard index.
func (s *MinerBoardSensor) Board() int {
	return s.board
}

// Sensor returns sensor key.
func (s *MinerBoardSensor) Sensor() string {
	return s.sensor
}

// Value returns the latest value or nil if board or sensor is missing.
func (s *MinerBoardSensor) Value() *float64 {
	d := s.coordinator.Data()
	if nil == d {
		return nil
	}

	b, ok := d.BoardSensors[s.board]
	if !ok {
		return nil
	}

	return b[s.sensor]
}
