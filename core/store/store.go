package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VictoriaMetrics/metrics"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kvcmd/core/command"
	"github.com/dmitrymomot/kvcmd/core/logger"
	"github.com/dmitrymomot/kvcmd/pkg/async"
)

var (
	// ErrNilClient is returned by New when no client is given.
	ErrNilClient = errors.New("store: nil client")

	// ErrProbeFailed is returned by New when the connection probe fails.
	ErrProbeFailed = errors.New("store: connection probe failed")

	// ErrTransactionRejected is returned by Multi when the server refused the
	// whole transaction (EXECABORT) because a queued command was malformed.
	ErrTransactionRejected = errors.New("store: transaction rejected")

	// ErrComposePanicked is returned when the function passed to Multi or Pipeline panics.
	ErrComposePanicked = errors.New("store: compose function panicked")
)

// Client is the client collaborator a Store needs: the command set, queuing
// handles (Pipeline, TxPipeline) and optimistic locking. *redis.Client,
// *redis.ClusterClient and *redis.Ring satisfy it.
type Client interface {
	redis.Cmdable
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
}

// Store is the caller-facing aggregate: every command of the live connection
// through the embedded immediate Surface, plus Multi and Pipeline.
//
// Example:
//
//	st, err := store.New(ctx, client, store.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if _, err := st.Do(ctx, "Set", "greeting", "hello", 0); err != nil {
//	    return err
//	}
type Store struct {
	*Surface

	client    Client
	logger    *slog.Logger
	buildOpts []command.Option
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	middleware []command.Middleware
	probe      bool
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMiddleware wraps every command of every surface the store builds,
// including the queued surfaces of Multi and Pipeline.
func WithMiddleware(middleware ...command.Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, middleware...)
	}
}

// WithMetrics records command counters and durations in set.
func WithMetrics(set *metrics.Set) Option {
	return func(o *options) {
		if set != nil {
			o.middleware = append(o.middleware, command.MetricsMiddleware(set))
		}
	}
}

// WithoutProbe skips the PING issued by New.
func WithoutProbe() Option {
	return func(o *options) {
		o.probe = false
	}
}

// New builds the immediate surface for client and probes the connection once
// with PING so a misconfigured connection fails here rather than on first use.
// Building several stores for one client is allowed; their tables are independent.
func New(ctx context.Context, client Client, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, command.Wrap("new", command.ModeImmediate, ErrNilClient)
	}

	o := options{logger: slog.Default(), probe: true}
	for _, opt := range opts {
		opt(&o)
	}

	buildOpts := []command.Option{command.WithLogger(o.logger)}
	if len(o.middleware) > 0 {
		buildOpts = append(buildOpts, command.WithMiddleware(o.middleware...))
	}

	surface, err := newSurface(client, command.Immediate(), buildOpts...)
	if err != nil {
		return nil, command.Wrap("new", command.ModeImmediate, err)
	}

	s := &Store{
		Surface:   surface,
		client:    client,
		logger:    o.logger,
		buildOpts: buildOpts,
	}

	if o.probe {
		if err := s.probe(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.DebugContext(ctx, "store ready",
		logger.Component("store"),
		logger.Count("commands", len(surface.owners)+surface.json.Len()))

	return s, nil
}

func (s *Store) probe(ctx context.Context) error {
	if _, err := s.Do(ctx, "Ping"); err != nil {
		cause := err
		var kvErr *command.Error
		if errors.As(err, &kvErr) {
			cause = kvErr.Err
		}
		s.logger.ErrorContext(ctx, "store probe failed", logger.Component("store"), logger.Error(cause))
		return &command.Error{
			Command: "Ping",
			Mode:    command.ModeImmediate,
			Err:     fmt.Errorf("%w: %w", ErrProbeFailed, cause),
		}
	}
	return nil
}

// Client returns the underlying client.
func (s *Store) Client() Client {
	return s.client
}

// Async runs one immediate command on its own goroutine.
// Cancelling ctx cancels only this call.
//
// Example:
//
//	a := st.Async(ctx, "Get", "a")
//	b := st.Async(ctx, "Get", "b")
//	vals, err := async.WaitAll(a, b)
func (s *Store) Async(ctx context.Context, name string, args ...any) *async.Future[any] {
	return async.Async(ctx, args, func(ctx context.Context, args []any) (any, error) {
		return s.Do(ctx, name, args...)
	})
}

// Healthcheck returns a function that pings the server through the store,
// suitable for readiness probes.
func (s *Store) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.Do(ctx, "Ping")
		return err
	}
}

// Multi runs fn against a queued surface and executes the queued commands
// atomically with MULTI/EXEC. See the package-level Multi.
func (s *Store) Multi(ctx context.Context, fn func(tx *Surface) (any, error), opts ...TxOption) (Outcome[any], error) {
	return Multi(ctx, s, fn, opts...)
}

// Pipeline runs fn against a queued surface and executes the queued commands
// as one non-atomic batch. See the package-level Pipeline.
func (s *Store) Pipeline(ctx context.Context, fn func(tx *Surface) (any, error)) (Outcome[any], error) {
	return Pipeline(ctx, s, fn)
}
