package logger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvcmd/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("tx", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "tx", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestCommandAttributes(t *testing.T) {
	t.Parallel()

	t.Run("non-empty values", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Get", logger.Command("Get").Value.String())
		assert.Equal(t, "strings", logger.Family("strings").Value.String())
		assert.Equal(t, "multi", logger.Mode("multi").Value.String())
		assert.Equal(t, "abc", logger.Scope("abc").Value.String())
	})

	t.Run("empty values produce empty attrs", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.Command("").Equal(slog.Attr{}))
		assert.True(t, logger.Family("").Equal(slog.Attr{}))
		assert.True(t, logger.Scope("").Equal(slog.Attr{}))
		assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))
	})
}

func TestTiming(t *testing.T) {
	t.Parallel()
	attr := logger.Duration(150 * time.Millisecond)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 150*time.Millisecond, attr.Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", elapsed.Key)
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), time.Second)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("text output respects level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

		log.Info("hidden")
		log.Warn("shown", logger.Command("Set"))

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "command=Set")
	})

	t.Run("json output with attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithJSONFormatter(),
			logger.WithAttr(logger.Component("kvcmd")),
		)

		log.Info("hello")

		assert.Contains(t, buf.String(), `"component":"kvcmd"`)
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("discard drops everything", func(t *testing.T) {
		t.Parallel()
		assert.False(t, logger.Discard().Enabled(context.Background(), slog.LevelError))
	})
}
