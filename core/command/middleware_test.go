package command_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvcmd/core/command"
	"github.com/dmitrymomot/kvcmd/core/logger"
)

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	client, _ := newClient(t)

	var order []string
	trace := func(tag string) command.Middleware {
		return func(_ string, _ command.Mode, next command.Func) command.Func {
			return func(ctx context.Context, args ...any) (any, error) {
				order = append(order, tag+":before")
				v, err := next(ctx, args...)
				order = append(order, tag+":after")
				return v, err
			}
		}
	}

	table := command.MustBuild(command.Server, command.Immediate(), client,
		command.WithMiddleware(trace("outer"), trace("inner")))

	v, err := table.Do(context.Background(), "Ping")
	require.NoError(t, err)
	assert.Equal(t, "PONG", v)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, _ := newClient(t)

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))

	table := command.MustBuild(command.Strings, command.Immediate(), client,
		command.WithMiddleware(command.LoggingMiddleware(log)))

	_, err := table.Do(ctx, "Set", "log", "v", 0)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "command completed")
	assert.Contains(t, buf.String(), "command=Set")
	assert.Contains(t, buf.String(), "mode=immediate")

	buf.Reset()
	_, err = table.Do(ctx, "Get", "log:missing")
	require.True(t, command.IsNil(err))
	assert.NotContains(t, buf.String(), "command failed")

	buf.Reset()
	_, err = table.Do(ctx, "Set", "log")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestMetricsMiddleware(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, _ := newClient(t)
	set := metrics.NewSet()

	table := command.MustBuild(command.Strings, command.Immediate(), client,
		command.WithMiddleware(command.MetricsMiddleware(set)))

	_, err := table.Do(ctx, "Set", "m", "v", 0)
	require.NoError(t, err)
	_, err = table.Do(ctx, "Get", "m")
	require.NoError(t, err)
	_, err = table.Do(ctx, "Get", "m:missing")
	require.Error(t, err)
	_, err = table.Do(ctx, "Get", 1)
	require.Error(t, err)

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	out := buf.String()

	assert.Contains(t, out, `kv_commands_total{command="Set",mode="immediate"} 1`)
	assert.Contains(t, out, `kv_commands_total{command="Get",mode="immediate"} 3`)
	assert.Contains(t, out, `kv_command_errors_total{command="Get",mode="immediate"} 1`)
	assert.Contains(t, out, `kv_command_errors_total{command="Set",mode="immediate"} 0`)
	assert.Contains(t, out, "kv_command_duration_seconds_bucket")
}

func TestTimeoutMiddleware(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	var hasDeadline bool
	next := func(ctx context.Context, args ...any) (any, error) {
		deadline, hasDeadline = ctx.Deadline()
		return len(args), nil
	}

	fn := command.TimeoutMiddleware(time.Minute)("Get", command.ModeImmediate, next)
	v, err := fn(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	expired := func(ctx context.Context, _ ...any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	fn = command.TimeoutMiddleware(time.Millisecond)("BLPop", command.ModeImmediate, expired)
	_, err = fn(context.Background())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	assert.False(t, command.IsNil(err))
	assert.NotErrorIs(t, err, redis.Nil)
}
