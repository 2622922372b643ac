// Package worker contains config entries lifecycle logic.
package worker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/systems"
	"github.com/go-home-io/minerhub/systems/coordinator"
	"github.com/go-home-io/minerhub/systems/entity"
	"github.com/go-home-io/minerhub/systems/sensor"
	"github.com/go-home-io/minerhub/utils"
)

const (
	// Default logger system.
	logSystem = "worker"
)

// RetryInterval defines how often not ready entries are re-tried.
// Doesn't match polling intervals so retries don't overlap with regular updates.
const RetryInterval = 73 * time.Second

// EntryStatus describes config entry state.
type EntryStatus string

const (
	// StatusLoaded describes successfully set up entry.
	StatusLoaded EntryStatus = "loaded"
	// StatusRetry describes entry which failed first refresh and waits for retry.
	StatusRetry EntryStatus = "setup_retry"
)

// IEntryManager defines config entries lifecycle.
type IEntryManager interface {
	Load(ctx context.Context)
	Add(entry *miner.ConfigEntry) error
	List() []*EntryView
	Stop()
}

// EntryView is a serializable entry state.
type EntryView struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	IP                string      `json:"ip"`
	Status            EntryStatus `json:"status"`
	LastUpdateSuccess bool        `json:"last_update_success"`
}

// Single managed entry.
type loadedEntry struct {
	sync.Mutex
	entry       *miner.ConfigEntry
	coordinator coordinator.ICoordinator
	unload      func()
	status      EntryStatus
}

// Entries state definition.
type workerState struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	mutex sync.Mutex

	registry entity.IRegistry
	entries  map[string]*loadedEntry
	retryID  int
}

// NewEntryManager creates a new entries manager.
// Entities created by entries are added to the registry.
func NewEntryManager(settings providers.ISettingsProvider, registry entity.IRegistry) IEntryManager {
	w := &workerState{
		Settings: settings,
		Logger:   settings.SystemLogger(),
		registry: registry,
		entries:  make(map[string]*loadedEntry),
	}

	id, err := w.Settings.Cron().AddFunc(utils.EverySpec(RetryInterval), w.retryLoad)
	if err != nil {
		w.Logger.Error("Failed to register retry cron", err, common.LogSystemToken, logSystem)
	}

	w.retryID = id
	return w
}

// Load sets up all configured entries.
func (w *workerState) Load(ctx context.Context) {
	wg := sync.WaitGroup{}
	for _, v := range w.Settings.Entries() {
		le, err := w.register(v)
		if err != nil {
			w.Logger.Warn("Skipping entry", common.LogEntryToken, v.ID,
				common.LogErrorToken, err.Error())
			continue
		}

		wg.Add(1)
		go func(le *loadedEntry) {
			defer wg.Done()
			w.setup(ctx, le)
		}(le)
	}

	wg.Wait()
	w.Logger.Info("Done loading entries", common.LogSystemToken, logSystem)
}

// Add persists a new entry and sets it up.
// Entry which is not ready yet is still persisted and re-tried later.
func (w *workerState) Add(entry *miner.ConfigEntry) error {
	w.mutex.Lock()
	_, ok := w.entries[entry.ID]
	w.mutex.Unlock()
	if ok {
		return &ErrEntryLoaded{ID: entry.ID}
	}

	if err := w.Settings.EntryStore().Save(entry); err != nil {
		return err
	}

	le, err := w.register(entry)
	if err != nil {
		return err
	}

	w.setup(context.Background(), le)
	return nil
}

// List returns states of all known entries sorted by ID.
func (w *workerState) List() []*EntryView {
	w.mutex.Lock()
	res := make([]*EntryView, 0, len(w.entries))
	for _, v := range w.entries {
		res = append(res, &EntryView{
			ID:                v.entry.ID,
			Title:             v.entry.Title,
			IP:                v.entry.IP(),
			Status:            v.status,
			LastUpdateSuccess: v.coordinator.LastUpdateSuccess(),
		})
	}
	w.mutex.Unlock()

	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})

	return res
}

// Stop unloads all entries.
func (w *workerState) Stop() {
	if 0 != w.retryID {
		w.Settings.Cron().RemoveFunc(w.retryID)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.Logger.Debug("Unloading entries", common.LogSystemToken, logSystem)
	for k, v := range w.entries {
		if nil != v.unload {
			v.unload()
		}

		v.coordinator.Unload()
		w.registry.RemoveEntry(k)
		delete(w.entries, k)
	}

	w.Logger.Debug("Done un-loading", common.LogSystemToken, logSystem)
}

// Creates coordinator for the entry and starts tracking it.
func (w *workerState) register(entry *miner.ConfigEntry) (*loadedEntry, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if _, ok := w.entries[entry.ID]; ok {
		return nil, &ErrEntryLoaded{ID: entry.ID}
	}

	hub := w.Settings.HubSettings()
	le := &loadedEntry{
		entry:  entry,
		status: StatusRetry,
		coordinator: coordinator.NewCoordinator(&coordinator.ConstructCoordinator{
			Entry:    entry,
			Factory:  w.Settings.MinerFactory(),
			Cron:     w.Settings.Cron(),
			Logger:   w.Settings.PluginLogger(systems.SysCoordinator.String(), entry.ID),
			Interval: time.Duration(hub.UpdateInterval) * time.Second,
			UOM:      hub.UOM,
		}),
	}

	w.entries[entry.ID] = le
	return le, nil
}

// Performs first refresh and creates entry entities.
func (w *workerState) setup(ctx context.Context, le *loadedEntry) {
	le.Lock()
	defer le.Unlock()

	w.mutex.Lock()
	loaded := StatusLoaded == le.status
	w.mutex.Unlock()
	if loaded {
		return
	}

	unload, err := sensor.SetupEntry(ctx, &sensor.ConstructSetup{
		Coordinator: le.coordinator,
		AddEntities: w.registry.Add,
		Logger:      w.Settings.PluginLogger(systems.SysSensor.String(), le.entry.ID),
		UOM:         w.Settings.HubSettings().UOM,
	})

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if err != nil {
		le.status = StatusRetry
		w.Logger.Warn("Entry is not ready, will retry later", common.LogEntryToken, le.entry.ID,
			common.LogErrorToken, err.Error())
		return
	}

	le.unload = unload
	le.status = StatusLoaded
	w.Logger.Info("Entry loaded", common.LogEntryToken, le.entry.ID,
		common.LogDeviceHostToken, le.entry.IP())
}

// Re-tries entries which failed the first refresh.
func (w *workerState) retryLoad() {
	w.mutex.Lock()
	failed := make([]*loadedEntry, 0)
	for _, v := range w.entries {
		if StatusRetry == v.status {
			failed = append(failed, v)
		}
	}
	w.mutex.Unlock()

	for _, v := range failed {
		w.Logger.Debug("Re-trying entry", common.LogEntryToken, v.entry.ID)
		w.setup(context.Background(), v)
	}
}
