package worker

import (
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasksBeforeStop(t *testing.T) {
	p := NewPool(3, 100, nil)

	var n atomic.Int32
	for i := 0; i < 50; i++ {
		assert.True(t, p.Submit(func() { n.Add(1) }))
	}
	p.Stop()

	assert.Equal(t, int32(50), n.Load())
}

func TestSubmitAfterStopIsRefused(t *testing.T) {
	p := NewPool(1, 1, nil)
	p.Stop()
	p.Stop()

	assert.False(t, p.Submit(func() {}))
}

func TestSubmitRefusesWhenFull(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	p := NewPool(1, 1, prometheus.NewGauge(prometheus.GaugeOpts{Name: "depth"}))

	assert.True(t, p.Submit(func() { close(started); <-block }))
	<-started
	assert.True(t, p.Submit(func() {}))
	assert.False(t, p.Submit(func() {}))

	close(block)
	p.Stop()
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	p := NewPool(1, 10, nil)

	var ran atomic.Bool
	p.Submit(func() { panic("boom") })
	p.Submit(func() { ran.Store(true) })
	p.Stop()

	assert.True(t, ran.Load())
}
