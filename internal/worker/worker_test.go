package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolDefaultsAndStop(t *testing.T) {
	p := NewPool(0)
	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(done) }))
	<-done

	p.Stop()
	p.Stop()
	require.ErrorIs(t, p.Submit(func() {}), ErrStopped)
}

func TestPoolSurvivesPanics(t *testing.T) {
	p := NewPool(1)
	ran := false
	require.NoError(t, p.Submit(nil))
	require.NoError(t, p.Submit(func() { panic("boom") }))
	require.NoError(t, p.Submit(func() { ran = true }))
	p.Stop()
	require.True(t, ran)
}
