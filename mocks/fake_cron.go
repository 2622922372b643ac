//go:build !release
// +build !release

package mocks

import (
	"errors"
	"sync"
)

type fakeCron struct {
	sync.Mutex
	lastID int
	jobs   map[int]func()
	specs  map[int]string
	fail   bool
}

func (f *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	if f.fail {
		return 0, errors.New("cron error")
	}

	f.Lock()
	defer f.Unlock()
	f.lastID++
	f.jobs[f.lastID] = cmd
	f.specs[f.lastID] = spec
	return f.lastID, nil
}

func (f *fakeCron) RemoveFunc(id int) {
	f.Lock()
	defer f.Unlock()
	delete(f.jobs, id)
	delete(f.specs, id)
}

// Tick invokes every scheduled job once, in the scheduling order.
func (f *fakeCron) Tick() {
	f.Lock()
	jobs := make([]func(), 0, len(f.jobs))
	for id := 1; id <= f.lastID; id++ {
		if j, ok := f.jobs[id]; ok {
			jobs = append(jobs, j)
		}
	}
	f.Unlock()

	for _, j := range jobs {
		j()
	}
}

// Specs returns all active schedules.
func (f *fakeCron) Specs() []string {
	f.Lock()
	defer f.Unlock()
	out := make([]string, 0, len(f.specs))
	for id := 1; id <= f.lastID; id++ {
		if s, ok := f.specs[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		jobs:  make(map[int]func()),
		specs: make(map[int]string),
	}
}

// FakeNewFailingCron creates a fake cron provider which rejects every job.
func FakeNewFailingCron() *fakeCron {
	c := FakeNewCron()
	c.fail = true
	return c
}
