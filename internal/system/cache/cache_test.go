package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	_ = log.Init("debug")
	c := NewCache(time.Minute)

	c.Set("key", "value")
	value, found := c.Get("key")

	assert.True(t, found)
	assert.Equal(t, "value", value)
}

func TestGetExpired(t *testing.T) {
	_ = log.Init("debug")
	c := NewCache(-time.Second)

	c.Set("key", "value")
	_, found := c.Get("key")

	assert.False(t, found)
}

func TestGetOrComputeComputesOnce(t *testing.T) {
	_ = log.Init("debug")
	c := NewCache(time.Minute)

	var computations int
	var mu sync.Mutex
	compute := func() interface{} {
		mu.Lock()
		defer mu.Unlock()
		computations++
		return computations
	}

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			c.GetOrCompute("key", compute)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, computations)
	value, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, 1, value)
}

func TestDelete(t *testing.T) {
	_ = log.Init("debug")
	c := NewCache(time.Minute)

	c.Set("key", "value")
	c.Delete("key")
	_, found := c.Get("key")

	assert.False(t, found)
}
