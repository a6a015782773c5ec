package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetServedNoticeHistoryIDIsStable(t *testing.T) {
	manager := NewManager()

	first := manager.GetServedNoticeHistoryID()
	second := manager.GetServedNoticeHistoryID()

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
}

func TestResetYieldsFreshID(t *testing.T) {
	manager := NewManager()

	first := manager.GetServedNoticeHistoryID()
	manager.Reset()
	second := manager.GetServedNoticeHistoryID()

	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestResetOnEmptyManager(t *testing.T) {
	manager := NewManager()

	assert.NotPanics(t, func() { manager.Reset() })
	assert.False(t, manager.HasSessionID())
}

func TestHasSessionIDDoesNotGenerate(t *testing.T) {
	manager := NewManager()

	assert.False(t, manager.HasSessionID())
	assert.False(t, manager.HasSessionID())

	manager.GetServedNoticeHistoryID()
	assert.True(t, manager.HasSessionID())

	manager.Reset()
	assert.False(t, manager.HasSessionID())
}

func TestConcurrentGetsObserveOneID(t *testing.T) {
	manager := NewManager()

	const goroutines = 32
	ids := make([]string, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			ids[i] = manager.GetServedNoticeHistoryID()
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestManagersAreIndependent(t *testing.T) {
	first := NewManager()
	second := NewManager()

	assert.NotEqual(t, first.GetServedNoticeHistoryID(), second.GetServedNoticeHistoryID())
}
