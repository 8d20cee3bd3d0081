// Package idempotency guards side-effecting operations with a client
// supplied key tracked in Redis. The first caller runs the operation; later
// callers see it in progress or get the recorded result back.
package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("idempotency: operation already in progress")
	ErrAlreadyCompleted  = errors.New("idempotency: operation already completed")
	ErrInvalidState      = errors.New("idempotency: invalid state")
)

// State is the lifecycle of a key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

// Idempotency tracks operation keys.
type Idempotency interface {
	// Acquire claims key. It returns StateNone when the caller now owns it,
	// otherwise the current state and, when completed, the recorded value.
	Acquire(ctx context.Context, key string, lock time.Duration) (State, string, error)
	// Complete records value for key until ttl passes.
	Complete(ctx context.Context, key, value string, ttl time.Duration) error
	// Release drops the claim so the operation can be retried.
	Release(ctx context.Context, key string) error
	// Exec runs fn once per key. A repeated call after success returns the
	// recorded value with ErrAlreadyCompleted.
	Exec(ctx context.Context, key string, fn func(context.Context) (string, error), opts ...Option) (string, error)
}

// StateTracker is the Redis backed Idempotency.
type StateTracker struct {
	client redis.UniversalClient
	prefix string
}

// New returns a tracker storing keys under "idempotency:".
func New(client redis.UniversalClient) *StateTracker {
	return &StateTracker{client: client, prefix: "idempotency:"}
}

// Option tunes Exec.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress claim lives if the owner crashes.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long a completed result is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

func (s *StateTracker) Acquire(ctx context.Context, key string, lock time.Duration) (State, string, error) {
	fk := s.prefix + key

	ok, err := s.client.SetNX(ctx, fk, string(StateInProgress), lock).Result()
	if err != nil {
		return "", "", err
	}
	if ok {
		return StateNone, "", nil
	}

	raw, err := s.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SetNX and Get
		return s.Acquire(ctx, key, lock)
	}
	if err != nil {
		return "", "", err
	}

	state, value, _ := strings.Cut(raw, ":")
	switch State(state) {
	case StateInProgress:
		return StateInProgress, "", nil
	case StateCompleted:
		return StateCompleted, value, nil
	default:
		return "", "", ErrInvalidState
	}
}

func (s *StateTracker) Complete(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, string(StateCompleted)+":"+value, ttl).Err()
}

func (s *StateTracker) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) (string, error), opts ...Option) (string, error) {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	state, value, err := s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return "", err
	}
	switch state {
	case StateInProgress:
		return "", ErrAlreadyInProgress
	case StateCompleted:
		return value, ErrAlreadyCompleted
	}

	value, err = fn(ctx)
	if err != nil {
		// the claim is released with a fresh context so a cancelled request
		// does not leave the key locked
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return "", errors.Join(err, s.Release(relCtx, key))
	}

	if err := s.Complete(ctx, key, value, o.stateTTL); err != nil {
		return value, err
	}
	return value, nil
}
