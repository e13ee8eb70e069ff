package command_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvcmd/core/command"
)

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("resolves go-redis method", func(t *testing.T) {
		t.Parallel()
		client, _ := newClient(t)

		b, err := command.Bind(client, "Set")
		require.NoError(t, err)
		assert.Equal(t, "Set", b.Name())
		assert.Len(t, b.Signature().Params, 3)
	})

	t.Run("signature is a copy", func(t *testing.T) {
		t.Parallel()
		client, _ := newClient(t)

		b, err := command.Bind(client, "Get")
		require.NoError(t, err)
		sig := b.Signature()
		sig.Params[0] = nil
		assert.NotNil(t, b.Signature().Params[0])
	})

	t.Run("unknown method", func(t *testing.T) {
		t.Parallel()
		client, _ := newClient(t)

		_, err := command.Bind(client, "Gett")
		assert.ErrorIs(t, err, command.ErrUnknownCommand)
	})
}

func TestInvokeArguments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, mr := newClient(t)

	t.Run("int widens to duration", func(t *testing.T) {
		b, err := command.Bind(client, "Set")
		require.NoError(t, err)

		cmd, err := b.Invoke(ctx, "widen", "v", int64(90*time.Second))
		require.NoError(t, err)
		require.NoError(t, cmd.Err())
		assert.Equal(t, 90*time.Second, mr.TTL("widen"))

		cmd, err = b.Invoke(ctx, "widen2", "v", int32(0))
		require.NoError(t, err)
		require.NoError(t, cmd.Err())
	})

	t.Run("wrong arity", func(t *testing.T) {
		b, err := command.Bind(client, "Get")
		require.NoError(t, err)

		_, err = b.Invoke(ctx)
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		_, err = b.Invoke(ctx, "a", "b")
		assert.ErrorIs(t, err, command.ErrInvalidArgument)
	})

	t.Run("no lossy conversion", func(t *testing.T) {
		b, err := command.Bind(client, "Get")
		require.NoError(t, err)

		_, err = b.Invoke(ctx, 65)
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		lr, err := command.Bind(client, "LRange")
		require.NoError(t, err)

		_, err = lr.Invoke(ctx, "list", uint64(math.MaxUint64), 1)
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		_, err = lr.Invoke(ctx, "list", 1.5, 1)
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		_, err = lr.Invoke(ctx, "list", nil, 1)
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		cmd, err := lr.Invoke(ctx, "list", int8(0), uint16(1))
		require.NoError(t, err)
		assert.NoError(t, cmd.Err())
	})

	t.Run("integer to float only when exact", func(t *testing.T) {
		b, err := command.Bind(client, "IncrByFloat")
		require.NoError(t, err)

		cmd, err := b.Invoke(ctx, "fl", 3)
		require.NoError(t, err)
		assert.Equal(t, 3.0, command.Value(cmd))

		cmd, err = b.Invoke(ctx, "fl", uint32(2))
		require.NoError(t, err)
		assert.Equal(t, 5.0, command.Value(cmd))

		_, err = b.Invoke(ctx, "fl", int64(1<<53+1))
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		_, err = b.Invoke(ctx, "fl", uint64(math.MaxUint64))
		assert.ErrorIs(t, err, command.ErrInvalidArgument)

		_, err = b.Invoke(ctx, "fl", int64(math.MaxInt64))
		assert.ErrorIs(t, err, command.ErrInvalidArgument)
	})

	t.Run("variadic spread", func(t *testing.T) {
		require.NoError(t, mr.Set("va", "1"))
		require.NoError(t, mr.Set("vb", "2"))

		b, err := command.Bind(client, "MGet")
		require.NoError(t, err)

		cmd, err := b.Invoke(ctx, "va", "vb")
		require.NoError(t, err)
		assert.Equal(t, []any{"1", "2"}, command.Value(cmd))

		cmd, err = b.Invoke(ctx, []string{"vb", "va", "missing"})
		require.NoError(t, err)
		assert.Equal(t, []any{"2", "1", nil}, command.Value(cmd))

		_, err = b.Invoke(ctx, "va", 2)
		assert.ErrorIs(t, err, command.ErrInvalidArgument)
	})

	t.Run("variadic any accepts anything", func(t *testing.T) {
		b, err := command.Bind(client, "RPush")
		require.NoError(t, err)

		cmd, err := b.Invoke(ctx, "rp", "a", 1, 2.5)
		require.NoError(t, err)
		assert.Equal(t, int64(3), command.Value(cmd))

		list, err := mr.List("rp")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "1", "2.5"}, list)
	})
}

func TestValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, mr := newClient(t)

	assert.Nil(t, command.Value(nil))

	require.NoError(t, mr.Set("scan:a", "1"))

	b, err := command.Bind(client, "Scan")
	require.NoError(t, err)

	cmd, err := b.Invoke(ctx, 0, "scan:*", 10)
	require.NoError(t, err)
	require.NoError(t, cmd.Err())

	val, ok := command.Value(cmd).([]any)
	require.True(t, ok, "scan yields keys and cursor")
	require.Len(t, val, 2)
	assert.Equal(t, []string{"scan:a"}, val[0])
	assert.Equal(t, uint64(0), val[1])
}
