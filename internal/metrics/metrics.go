// Package metrics keeps in-process counters of backend traffic.
package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// HTTP counts backend calls by outcome. The zero value is ready to use.
type HTTP struct {
	requests     Counter
	failures     Counter
	clientErrors Counter
	serverErrors Counter
	nanos        Counter
}

// Observe records one call. err is a transport failure, status is ignored then.
func (h *HTTP) Observe(status int, err error, d time.Duration) {
	h.requests.Inc()
	if d > 0 {
		h.nanos.Add(uint64(d))
	}
	switch {
	case err != nil:
		h.failures.Inc()
	case status >= 500:
		h.serverErrors.Inc()
	case status >= 400:
		h.clientErrors.Inc()
	}
}

type Snapshot struct {
	Requests     uint64
	Failures     uint64
	ClientErrors uint64
	ServerErrors uint64
	AvgLatency   time.Duration
}

func (h *HTTP) Snapshot() Snapshot {
	s := Snapshot{
		Requests:     h.requests.Load(),
		Failures:     h.failures.Load(),
		ClientErrors: h.clientErrors.Load(),
		ServerErrors: h.serverErrors.Load(),
	}
	if s.Requests > 0 {
		s.AvgLatency = time.Duration(h.nanos.Load() / s.Requests)
	}
	return s
}
