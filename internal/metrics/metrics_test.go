package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(5)

	assert.Equal(t, uint64(55), c.Load())
}

func TestTimer(t *testing.T) {
	tm := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, tm.Duration(), time.Millisecond)
}

func TestHTTP(t *testing.T) {
	var h HTTP
	assert.Equal(t, Snapshot{}, h.Snapshot())

	h.Observe(200, nil, 10*time.Millisecond)
	h.Observe(404, nil, 20*time.Millisecond)
	h.Observe(503, nil, 30*time.Millisecond)
	h.Observe(0, errors.New("dial tcp"), 40*time.Millisecond)

	assert.Equal(t, Snapshot{
		Requests:     4,
		Failures:     1,
		ClientErrors: 1,
		ServerErrors: 1,
		AvgLatency:   25 * time.Millisecond,
	}, h.Snapshot())
}
