package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) (*StateTracker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client), mr
}

func TestExecOnce(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	calls := 0
	fn := func(context.Context) (string, error) {
		calls++
		return "doc-1", nil
	}

	v, err := tr.Exec(ctx, "k1", fn)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", v)

	v, err = tr.Exec(ctx, "k1", fn)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, "doc-1", v)
	assert.Equal(t, 1, calls)
}

func TestExecReleasesOnFailure(t *testing.T) {
	tr, mr := newTracker(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := tr.Exec(ctx, "k2", func(context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("idempotency:k2"))

	v, err := tr.Exec(ctx, "k2", func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestExecInProgress(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	state, _, err := tr.Acquire(ctx, "k3", time.Minute)
	require.NoError(t, err)
	require.Equal(t, StateNone, state)

	_, err = tr.Exec(ctx, "k3", func(context.Context) (string, error) { return "x", nil })
	assert.ErrorIs(t, err, ErrAlreadyInProgress)
}

func TestLockExpires(t *testing.T) {
	tr, mr := newTracker(t)
	ctx := context.Background()

	_, _, err := tr.Acquire(ctx, "k4", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	state, _, err := tr.Acquire(ctx, "k4", time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
}

func TestInvalidState(t *testing.T) {
	tr, mr := newTracker(t)
	require.NoError(t, mr.Set("idempotency:k5", "garbage"))

	_, _, err := tr.Acquire(context.Background(), "k5", time.Minute)
	assert.ErrorIs(t, err, ErrInvalidState)
}
