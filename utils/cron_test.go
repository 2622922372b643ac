package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests that un-register works as expected.
func TestCron(t *testing.T) {
	prov := NewCron()
	var called int32
	ids := make(chan int, 1)
	id, err := prov.AddFunc(EverySpec(1*time.Second), func() {
		if 2 == atomic.AddInt32(&called, 1) {
			prov.RemoveFunc(<-ids)
		}
	})

	require.NoError(t, err)
	ids <- id
	time.Sleep(4 * time.Second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&called))
}

// Tests spec formatting.
func TestEverySpec(t *testing.T) {
	assert.Equal(t, "@every 10s", EverySpec(10*time.Second))
	assert.Equal(t, "@every 1m13s", EverySpec(73*time.Second))
}

// Tests wrong spec.
func TestCronWrongSpec(t *testing.T) {
	prov := NewCron()
	_, err := prov.AddFunc("@every wrong", func() {})
	assert.Error(t, err)
}
