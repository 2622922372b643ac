package sensor

import (
	"context"
	"sort"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
	"github.com/go-home-io/minerhub/systems/coordinator"
)

// AddEntitiesCallback registers newly created entities.
type AddEntitiesCallback func([]IEntity)

// Tracks which sensors already have entities.
type tracker struct {
	coordinator       coordinator.ICoordinator
	uom               enums.UOM
	logger            common.ILoggerProvider
	knownKeys         map[string]bool
	knownBoardSensors map[int]map[string]bool
}

// ConstructSetup has data required for entry sensors setup.
type ConstructSetup struct {
	Coordinator coordinator.ICoordinator
	AddEntities AddEntitiesCallback
	Logger      common.ILoggerProvider
	UOM         enums.UOM
}

// SetupEntry creates entities for the config entry.
// First refresh must succeed. Initial entities cover every reported miner key and
// every sensor of every expected board. Later refreshes create entities only for
// keys and board sensors which weren't seen before. Returned function detaches the listener.
func SetupEntry(ctx context.Context, ctor *ConstructSetup) (func(), error) {
	if err := ctor.Coordinator.FirstRefresh(ctx); err != nil {
		return nil, err
	}

	t := &tracker{
		coordinator:       ctor.Coordinator,
		uom:               ctor.UOM,
		logger:            ctor.Logger,
		knownKeys:         make(map[string]bool),
		knownBoardSensors: make(map[int]map[string]bool),
	}

	data := ctor.Coordinator.Data()
	entities := make([]IEntity, 0)
	for _, k := range sortedKeys(data.MinerSensors) {
		entities = append(entities, t.createMinerEntity(k))
	}

	for board := 0; board < data.ExpectedHashboards; board++ {
		for _, s := range miner.BoardSensorKeys {
			entities = append(entities, t.createBoardEntity(board, s))
		}
	}

	if len(entities) > 0 {
		ctor.AddEntities(entities)
	}

	remove := ctor.Coordinator.AddListener(func() {
		if n := t.newEntities(); len(n) > 0 {
			ctor.AddEntities(n)
		}
	})

	return remove, nil
}

// Returns entities for the keys which weren't seen before.
func (t *tracker) newEntities() []IEntity {
	data := t.coordinator.Data()
	if nil == data {
		return nil
	}

	res := make([]IEntity, 0)
	for _, k := range sortedKeys(data.MinerSensors) {
		if !t.knownKeys[k] {
			res = append(res, t.createMinerEntity(k))
		}
	}

	boards := make([]int, 0, len(data.BoardSensors))
	for b := range data.BoardSensors {
		boards = append(boards, b)
	}
	sort.Ints(boards)

	for _, b := range boards {
		for _, s := range sortedKeys(data.BoardSensors[b]) {
			if !t.knownBoardSensors[b][s] {
				res = append(res, t.createBoardEntity(b, s))
			}
		}
	}

	return res
}

// Creates miner level entity and marks the key as known.
func (t *tracker) createMinerEntity(key string) IEntity {
	t.knownKeys[key] = true
	t.logger.Debug("Creating miner sensor", common.LogEntryToken, t.coordinator.EntryID(),
		common.LogSensorToken, key)
	return NewMinerSensor(t.coordinator, key, t.uom)
}

// Creates board level entity and marks the pair as known.
func (t *tracker) createBoardEntity(board int, sensor string) IEntity {
	known, ok := t.knownBoardSensors[board]
	if !ok {
		known = make(map[string]bool)
		t.knownBoardSensors[board] = known
	}

	known[sensor] = true
	return NewMinerBoardSensor(t.coordinator, board, sensor, t.uom)
}

// Returns map keys in a stable order.
func sortedKeys(m map[string]*float64) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}

	sort.Strings(res)
	return res
}
