// Package goroutine runs background work with a concurrency cap, panic
// recovery and a shutdown barrier.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/esign/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrClosed is reported when work is submitted after Wait.
var ErrClosed = errors.New("goroutine: manager is closed")

// ErrSaturated is reported when every slot is taken.
var ErrSaturated = errors.New("goroutine: maximum goroutine limit reached")

// Manager runs functions in goroutines and collects their errors.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	mu     sync.Mutex
	errs   []error
	closed bool
}

// NewManager creates a Manager that runs at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go starts f unless the manager is closed or saturated, in which case the
// task is dropped with a warning and the reason is returned.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, task dropped")
		return ErrClosed
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, task dropped")
		return ErrSaturated
	}

	g.wg.Go(func() { g.run(ctx, f) })
	return nil
}

func (g *Manager) run(ctx context.Context, f func(ctx context.Context) error) {
	defer func() { <-g.sema }()
	defer func() {
		if rvr := recover(); rvr != nil {
			paths := stacktrace.InternalPaths(debug.Stack())
			slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", paths)
			g.record(fmt.Errorf("goroutine: panic: %v", rvr))
		}
	}()

	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "goroutine canceled before start", "because", err)
		return
	}

	if err := f(ctx); err != nil {
		g.record(err)
	}
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait closes the manager, blocks until running tasks return and joins
// their errors.
func (g *Manager) Wait() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
