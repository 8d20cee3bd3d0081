package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCollectsErrors(t *testing.T) {
	m := NewManager(4)
	boom := errors.New("boom")

	var ran atomic.Int32
	require.NoError(t, m.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return nil
	}))
	require.NoError(t, m.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return boom
	}))

	err := m.Wait()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), ran.Load())
}

func TestManagerRecoversPanic(t *testing.T) {
	m := NewManager(1)
	require.NoError(t, m.Go(context.Background(), func(context.Context) error {
		panic("kaboom")
	}))

	err := m.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestManagerSaturatedAndClosed(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, m.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	assert.ErrorIs(t, m.Go(context.Background(), func(context.Context) error { return nil }), ErrSaturated)

	close(release)
	require.NoError(t, m.Wait())
	assert.ErrorIs(t, m.Go(context.Background(), func(context.Context) error { return nil }), ErrClosed)
}

func TestManagerSkipsCanceled(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	require.NoError(t, m.Go(ctx, func(context.Context) error {
		ran.Store(true)
		return nil
	}))

	require.NoError(t, m.Wait())
	assert.False(t, ran.Load())
}
