package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/dmitrymomot/kvcmd/core/logger"
)

// Middleware wraps a table entry to add cross-cutting functionality.
// It receives the client method name and mode of the entry it wraps.
type Middleware func(command string, mode Mode, next Func) Func

// chainMiddleware applies multiple middleware in order.
// The first middleware in the slice is the outermost (executed first).
func chainMiddleware(command string, mode Mode, fn Func, middleware []Middleware) Func {
	// Reverse order required: wrapping innermost first makes it execute last
	for i := len(middleware) - 1; i >= 0; i-- {
		fn = middleware[i](command, mode, fn)
	}
	return fn
}

// LoggingMiddleware returns a middleware that logs command execution.
// It logs the command name, mode, execution duration, and any errors.
// Queued calls only record a command, so their duration is the queuing time.
//
// Example:
//
//	st, err := store.New(ctx, client,
//	    store.WithMiddleware(command.LoggingMiddleware(logger)),
//	)
func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(command string, mode Mode, next Func) Func {
		return func(ctx context.Context, args ...any) (any, error) {
			start := time.Now()

			log.DebugContext(ctx, "command started",
				logger.Command(command),
				logger.Mode(string(mode)))

			val, err := next(ctx, args...)
			if err != nil && !IsNil(err) {
				log.ErrorContext(ctx, "command failed",
					logger.Command(command),
					logger.Mode(string(mode)),
					logger.Duration(time.Since(start)),
					logger.Error(err))
				return val, err
			}

			log.DebugContext(ctx, "command completed",
				logger.Command(command),
				logger.Mode(string(mode)),
				logger.Duration(time.Since(start)))

			return val, err
		}
	}
}

// MetricsMiddleware returns a middleware that counts calls and failures and
// records call durations in set. A missing key (redis.Nil) is not a failure.
//
// Exposed metrics:
//
//	kv_commands_total{command="Get",mode="immediate"}
//	kv_command_errors_total{command="Get",mode="immediate"}
//	kv_command_duration_seconds{command="Get",mode="immediate"}
func MetricsMiddleware(set *metrics.Set) Middleware {
	return func(command string, mode Mode, next Func) Func {
		labels := fmt.Sprintf(`{command=%q,mode=%q}`, command, mode)
		calls := set.GetOrCreateCounter("kv_commands_total" + labels)
		failures := set.GetOrCreateCounter("kv_command_errors_total" + labels)
		duration := set.GetOrCreateHistogram("kv_command_duration_seconds" + labels)

		return func(ctx context.Context, args ...any) (any, error) {
			start := time.Now()
			val, err := next(ctx, args...)
			duration.UpdateDuration(start)
			calls.Inc()
			if err != nil && !IsNil(err) {
				failures.Inc()
			}
			return val, err
		}
	}
}

// TimeoutMiddleware bounds every call with timeout.
// The client returns a context error when the deadline passes, which is wrapped as usual.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(_ string, _ Mode, next Func) Func {
		return func(ctx context.Context, args ...any) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, args...)
		}
	}
}
