// Package loading tracks outstanding backend calls process-wide.
package loading

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Tracker is safe for concurrent use. Show and Hide must be paired.
type Tracker struct {
	n     atomic.Int64
	gauge prometheus.Gauge
}

// New returns a tracker that mirrors its count into gauge when non-nil.
func New(gauge prometheus.Gauge) *Tracker {
	return &Tracker{gauge: gauge}
}

func (t *Tracker) Show() {
	t.n.Add(1)
	if t.gauge != nil {
		t.gauge.Inc()
	}
}

// Hide never drives the count below zero.
func (t *Tracker) Hide() {
	for {
		cur := t.n.Load()
		if cur <= 0 {
			return
		}
		if t.n.CompareAndSwap(cur, cur-1) {
			break
		}
	}
	if t.gauge != nil {
		t.gauge.Dec()
	}
}

func (t *Tracker) IsLoading() bool { return t.n.Load() > 0 }

func (t *Tracker) InFlight() int64 { return t.n.Load() }
