package metrics

import (
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

	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.Counter("product.ok").Inc()
	r.Counter("product.ok").Inc()
	r.Counter("receipt.not_found").Inc()

	assert.Same(t, r.Counter("product.ok"), r.Counter("product.ok"))
	assert.Equal(t, map[string]uint64{
		"product.ok":        2,
		"receipt.not_found": 1,
	}, r.Snapshot())
	assert.Equal(t, []string{"product.ok", "receipt.not_found"}, r.Names())
}
