//go:build !release
// +build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/minerhub/plugins/common"
)

type fakeStorage struct {
	sync.Mutex
	states []*common.MsgEntityUpdate
}

func (f *fakeStorage) State(msg *common.MsgEntityUpdate) {
	f.Lock()
	defer f.Unlock()
	f.states = append(f.states, msg)
}

func (f *fakeStorage) History(id string) map[int64]*float64 {
	f.Lock()
	defer f.Unlock()
	out := make(map[int64]*float64)
	for _, v := range f.states {
		if v.ID == id {
			out[v.Timestamp] = v.Value
		}
	}
	return out
}

// FakeNewStorage creates a new in-memory storage.
func FakeNewStorage() *fakeStorage {
	return &fakeStorage{}
}
