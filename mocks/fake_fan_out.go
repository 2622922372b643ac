//go:build !release
// +build !release

package mocks

import (
	"github.com/go-home-io/minerhub/plugins/common"
)

type fakeFanOut struct {
	inEntityUpdates chan *common.MsgEntityUpdate
}

func (f *fakeFanOut) SubscribeEntityUpdates() (int64, chan *common.MsgEntityUpdate) {
	return 1, f.inEntityUpdates
}

func (f *fakeFanOut) UnSubscribeEntityUpdates(int64) {
}

func (f *fakeFanOut) ChannelInEntityUpdates() chan *common.MsgEntityUpdate {
	return f.inEntityUpdates
}

// FakeNewFanOut creates a fan-out which loops published messages back to the subscriber.
func FakeNewFanOut() *fakeFanOut {
	return &fakeFanOut{
		inEntityUpdates: make(chan *common.MsgEntityUpdate, 100),
	}
}

func (f *fakeFanOut) Stop() {
}
