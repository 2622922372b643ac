// Package coordinator implements per-entry miner polling.
package coordinator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/plugins/helpers"
	"github.com/go-home-io/minerhub/plugins/miner"
	"github.com/go-home-io/minerhub/plugins/miner/enums"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/utils"
)

// Polling limits.
const (
	// DefaultInterval is used when interval is not configured.
	DefaultInterval = 10 * time.Second
	// MinInterval is the fastest allowed polling rate.
	MinInterval = 5 * time.Second

	defaultTimeout = 30 * time.Second
)

// ICoordinator defines a polling coordinator of a single config entry.
type ICoordinator interface {
	EntryID() string
	Title() string
	Data() *miner.Data
	LastUpdateSuccess() bool
	FirstRefresh(ctx context.Context) error
	Refresh(ctx context.Context) error
	AddListener(func()) func()
	Unload()
}

// Single registered listener.
type listener struct {
	id int
	fn func()
}

// Coordinator implementation.
type coordinator struct {
	sync.Mutex

	entry    *miner.ConfigEntry
	factory  providers.IMinerFactory
	cron     providers.ICronProvider
	logger   common.ILoggerProvider
	interval time.Duration
	timeout  time.Duration
	uom      enums.UOM

	miner             miner.IMiner
	data              *miner.Data
	lastUpdateSuccess bool
	lastLoggedFailure bool

	listeners []*listener
	lastID    int
	jobID     int

	refreshing int32
}

// ConstructCoordinator has data required for a new coordinator.
type ConstructCoordinator struct {
	Entry    *miner.ConfigEntry
	Factory  providers.IMinerFactory
	Cron     providers.ICronProvider
	Logger   common.ILoggerProvider
	Interval time.Duration
	Timeout  time.Duration
	UOM      enums.UOM
}

// NewCoordinator constructs a new coordinator.
// Polling starts after the successful first refresh.
func NewCoordinator(ctor *ConstructCoordinator) ICoordinator {
	c := &coordinator{
		entry:     ctor.Entry,
		factory:   ctor.Factory,
		cron:      ctor.Cron,
		logger:    ctor.Logger,
		interval:  ctor.Interval,
		timeout:   ctor.Timeout,
		uom:       ctor.UOM,
		listeners: make([]*listener, 0),
	}

	if c.interval <= 0 {
		c.interval = DefaultInterval
	}

	if c.interval < MinInterval {
		c.logger.Warn("Polling interval is too small, using minimal one",
			common.LogEntryToken, c.entry.ID)
		c.interval = MinInterval
	}

	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	return c
}

// EntryID returns config entry ID.
func (c *coordinator) EntryID() string {
	return c.entry.ID
}

// Title returns config entry title.
func (c *coordinator) Title() string {
	return c.entry.Title
}

// Data returns the latest telemetry snapshot.
func (c *coordinator) Data() *miner.Data {
	c.Lock()
	defer c.Unlock()
	return c.data
}

// LastUpdateSuccess returns whether the latest refresh succeeded.
func (c *coordinator) LastUpdateSuccess() bool {
	c.Lock()
	defer c.Unlock()
	return c.lastUpdateSuccess
}

// FirstRefresh performs initial refresh and starts polling.
func (c *coordinator) FirstRefresh(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return &ErrEntryNotReady{EntryID: c.entry.ID, Cause: err}
	}

	c.Lock()
	defer c.Unlock()
	if 0 != c.jobID {
		return nil
	}

	id, err := c.cron.AddFunc(utils.EverySpec(c.interval), c.tick)
	if err != nil {
		c.logger.Error("Failed to schedule miner updates", err, common.LogEntryToken, c.entry.ID)
		return &ErrEntryNotReady{EntryID: c.entry.ID, Cause: err}
	}

	c.jobID = id
	c.logger.Debug("Polling started", common.LogEntryToken, c.entry.ID,
		"interval", c.interval.String())
	return nil
}

// Unload stops polling.
func (c *coordinator) Unload() {
	c.Lock()
	defer c.Unlock()
	if 0 != c.jobID {
		c.cron.RemoveFunc(c.jobID)
		c.jobID = 0
	}
}

// AddListener registers a callback invoked after every successful refresh.
// Returned function removes the listener.
func (c *coordinator) AddListener(fn func()) func() {
	c.Lock()
	defer c.Unlock()
	c.lastID++
	id := c.lastID
	c.listeners = append(c.listeners, &listener{id: id, fn: fn})

	return func() {
		c.Lock()
		defer c.Unlock()
		for ii, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:ii:ii], c.listeners[ii+1:]...)
				return
			}
		}
	}
}

// Scheduled refresh.
// Tick is skipped if the previous refresh is still running.
func (c *coordinator) tick() {
	if !atomic.CompareAndSwapInt32(&c.refreshing, 0, 1) {
		c.logger.Debug("Previous refresh is still running", common.LogEntryToken, c.entry.ID)
		return
	}
	defer atomic.StoreInt32(&c.refreshing, 0)

	c.Refresh(context.Background()) // nolint: errcheck
}

// Refresh fetches a new telemetry snapshot.
// Failure keeps previous data and resets the miner, listeners are not notified.
func (c *coordinator) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.fetch(ctx)
	if err != nil {
		c.Lock()
		c.lastUpdateSuccess = false
		c.miner = nil
		logged := c.lastLoggedFailure
		c.lastLoggedFailure = true
		c.Unlock()

		if logged {
			c.logger.Debug("Miner is still unavailable", common.LogEntryToken, c.entry.ID,
				common.LogErrorToken, err.Error())
		} else {
			c.logger.Error("Failed to refresh miner data", err, common.LogEntryToken, c.entry.ID,
				common.LogDeviceHostToken, c.entry.IP())
		}

		return err
	}

	helpers.UOMConvertData(data, c.uom)

	c.Lock()
	if c.lastLoggedFailure {
		c.logger.Info("Miner is back online", common.LogEntryToken, c.entry.ID)
	}

	c.data = data
	c.lastUpdateSuccess = true
	c.lastLoggedFailure = false
	snapshot := make([]*listener, len(c.listeners))
	copy(snapshot, c.listeners)
	c.Unlock()

	for _, l := range snapshot {
		l.fn()
	}

	return nil
}

// Resolves miner if needed and requests data.
func (c *coordinator) fetch(ctx context.Context) (*miner.Data, error) {
	c.Lock()
	m := c.miner
	c.Unlock()

	if nil == m {
		var err error
		m, err = c.factory.GetMiner(ctx, c.entry.IP())
		if err != nil {
			return nil, err
		}

		if nil == m {
			return nil, &ErrMinerNotFound{IP: c.entry.IP()}
		}

		m.SetCredentials(c.entry.Credentials())
		c.Lock()
		c.miner = m
		c.Unlock()
	}

	return m.Data(ctx)
}
