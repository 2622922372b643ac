// Package entity contains registry of all created entities.
package entity

import (
	"sort"
	"sync"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems/sensor"
	"github.com/go-home-io/minerhub/utils"
)

// IRegistry defines entity registry.
type IRegistry interface {
	Add(entities []sensor.IEntity)
	Get(id string) (sensor.IEntity, bool)
	All() []sensor.IEntity
	RemoveEntry(entryID string)
}

// Registered config entry.
type entry struct {
	removeListener func()
	entities       []sensor.IEntity
}

// Registry implementation.
type registry struct {
	sync.Mutex

	logger   common.ILoggerProvider
	fanOut   providers.IInternalFanOutProvider
	storage  providers.IStorageProvider
	entities map[string]sensor.IEntity
	entries  map[string]*entry
}

// ConstructRegistry has data required for a new registry.
type ConstructRegistry struct {
	Logger  common.ILoggerProvider
	FanOut  providers.IInternalFanOutProvider
	Storage providers.IStorageProvider
}

// NewRegistry constructs a new entity registry.
func NewRegistry(ctor *ConstructRegistry) IRegistry {
	return &registry{
		logger:   ctor.Logger,
		fanOut:   ctor.FanOut,
		storage:  ctor.Storage,
		entities: make(map[string]sensor.IEntity),
		entries:  make(map[string]*entry),
	}
}

// Add registers new entities and publishes their initial state.
// Entities with already registered unique IDs are ignored.
func (r *registry) Add(entities []sensor.IEntity) {
	added := make([]sensor.IEntity, 0, len(entities))

	r.Lock()
	for _, e := range entities {
		if _, ok := r.entities[e.UniqueID()]; ok {
			r.logger.Warn("Entity is already registered", common.LogEntityToken, e.UniqueID(),
				common.LogEntryToken, e.EntryID())
			continue
		}

		r.entities[e.UniqueID()] = e
		r.attach(e)
		added = append(added, e)
		r.logger.Info("Registered new entity", common.LogEntityToken, e.UniqueID(),
			common.LogNameToken, e.Name())
	}
	r.Unlock()

	for _, e := range added {
		r.publish(e)
	}
}

// Attaches entity to its entry, subscribing to the coordinator once per entry.
func (r *registry) attach(e sensor.IEntity) {
	id := e.EntryID()
	en, ok := r.entries[id]
	if !ok {
		en = &entry{entities: make([]sensor.IEntity, 0)}
		en.removeListener = e.Coordinator().AddListener(func() {
			r.entryUpdated(id)
		})
		r.entries[id] = en
	}

	en.entities = append(en.entities, e)
}

// Publishes state of every entry entity.
func (r *registry) entryUpdated(entryID string) {
	r.Lock()
	en, ok := r.entries[entryID]
	var snapshot []sensor.IEntity
	if ok {
		snapshot = make([]sensor.IEntity, len(en.entities))
		copy(snapshot, en.entities)
	}
	r.Unlock()

	for _, e := range snapshot {
		r.publish(e)
	}
}

// Sends entity state to the fan-out and history storage.
func (r *registry) publish(e sensor.IEntity) {
	msg := &common.MsgEntityUpdate{
		ID:        e.UniqueID(),
		Name:      e.Name(),
		EntryID:   e.EntryID(),
		Value:     e.Value(),
		Unit:      e.Unit(),
		Timestamp: utils.TimeNow(),
	}

	r.storage.State(msg)
	r.fanOut.ChannelInEntityUpdates() <- msg
}

// Get returns entity by its unique ID.
func (r *registry) Get(id string) (sensor.IEntity, bool) {
	r.Lock()
	defer r.Unlock()
	e, ok := r.entities[id]
	return e, ok
}

// All returns all registered entities sorted by unique ID.
func (r *registry) All() []sensor.IEntity {
	r.Lock()
	res := make([]sensor.IEntity, 0, len(r.entities))
	for _, v := range r.entities {
		res = append(res, v)
	}
	r.Unlock()

	sort.Slice(res, func(i, j int) bool {
		return res[i].UniqueID() < res[j].UniqueID()
	})

	return res
}

// RemoveEntry unsubscribes from the entry coordinator and drops entry entities.
func (r *registry) RemoveEntry(entryID string) {
	r.Lock()
	defer r.Unlock()

	en, ok := r.entries[entryID]
	if !ok {
		return
	}

	en.removeListener()
	for _, e := range en.entities {
		delete(r.entities, e.UniqueID())
	}

	delete(r.entries, entryID)
	r.logger.Info("Entry entities removed", common.LogEntryToken, entryID)
}
