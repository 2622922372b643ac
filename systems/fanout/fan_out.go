// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"github.com/go-home-io/minerhub/utils"
)

// Subscriber channel capacity.
const bufferSize = 50

// Implements IInternalFanOutProvider.
type provider struct {
	sync.Mutex

	logger common.ILoggerProvider

	inEntityUpdates  chan *common.MsgEntityUpdate
	outEntityUpdates map[int64]chan *common.MsgEntityUpdate

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewFanOut constructs new FanOut provider.
func NewFanOut(logger common.ILoggerProvider) providers.IInternalFanOutProvider {
	p := &provider{
		logger:           logger,
		inEntityUpdates:  make(chan *common.MsgEntityUpdate, bufferSize),
		outEntityUpdates: make(map[int64]chan *common.MsgEntityUpdate),
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}

	go p.internalCycle()
	return p
}

// SubscribeEntityUpdates allows to subscribe to the entity updates.
func (p *provider) SubscribeEntityUpdates() (int64, chan *common.MsgEntityUpdate) {
	p.Lock()
	defer p.Unlock()

	c := make(chan *common.MsgEntityUpdate, bufferSize)
	id := p.getID()
	p.outEntityUpdates[id] = c
	return id, c
}

// UnSubscribeEntityUpdates allows to un-subscribe from the entity updates.
func (p *provider) UnSubscribeEntityUpdates(id int64) {
	p.Lock()
	defer p.Unlock()

	c, ok := p.outEntityUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outEntityUpdates, id)
}

// ChannelInEntityUpdates returns input channel for the entity updates.
func (p *provider) ChannelInEntityUpdates() chan *common.MsgEntityUpdate {
	return p.inEntityUpdates
}

// Stop terminates broadcasting and closes all subscribers.
func (p *provider) Stop() {
	p.once.Do(func() {
		close(p.stop)
		<-p.done

		p.Lock()
		defer p.Unlock()
		for k, v := range p.outEntityUpdates {
			close(v)
			delete(p.outEntityUpdates, k)
		}
	})
}

// Returns unique subscription ID.
func (p *provider) getID() int64 {
	for {
		id := utils.TimeNow() + rand.Int63()
		if _, ok := p.outEntityUpdates[id]; !ok {
			return id
		}
	}
}

func (p *provider) internalCycle() {
	defer close(p.done)
	for {
		select {
		case <-p.stop:
			return
		case u := <-p.inEntityUpdates:
			p.entityUpdates(u)
		}
	}
}

// Broadcasts entity updates.
// Slow subscribers lose the message instead of blocking others.
func (p *provider) entityUpdates(update *common.MsgEntityUpdate) {
	p.Lock()
	defer p.Unlock()

	for id, v := range p.outEntityUpdates {
		select {
		case v <- update:
		default:
			p.logger.Warn("Subscriber is too slow, dropping entity update",
				common.LogEntityToken, update.ID, "subscriber", strconv.FormatInt(id, 10))
		}
	}
}
