package idempotency

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestExecAgainstRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, nat.Port("6379/tcp"))
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: net.JoinHostPort(host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	tr := New(client)

	t.Run("ConcurrentCallersRunOnce", func(t *testing.T) {
		// Arrange
		var runs atomic.Int32
		release := make(chan struct{})
		fn := func(context.Context) (string, error) {
			runs.Add(1)
			<-release
			return "doc-9", nil
		}

		// Act
		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Go(func() {
				_, err := tr.Exec(ctx, "race", fn)
				errs <- err
			})
		}
		require.Eventually(t, func() bool { return runs.Load() == 1 && len(errs) == 7 }, 10*time.Second, 10*time.Millisecond)
		close(release)
		wg.Wait()
		close(errs)

		// Assert
		var ok, busy int
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrAlreadyInProgress):
				busy++
			}
		}
		assert.Equal(t, int32(1), runs.Load())
		assert.Equal(t, 1, ok)
		assert.Equal(t, 7, busy)

		v, err := tr.Exec(ctx, "race", fn)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
		assert.Equal(t, "doc-9", v)
	})
}
