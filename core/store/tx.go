package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kvcmd/core/command"
	"github.com/dmitrymomot/kvcmd/core/logger"
)

// TxOption configures Multi.
type TxOption func(*txOptions)

type txOptions struct {
	watch []string
}

// Watch makes Multi optimistic: keys are WATCHed before fn runs, and if any of
// them changes before EXEC the server discards the transaction and the Outcome
// is Aborted. Inside fn, tx.Watched() reads through the watching connection.
func Watch(keys ...string) TxOption {
	return func(o *txOptions) {
		o.watch = append(o.watch, keys...)
	}
}

// scope is one Open→Build→Execute→Finish run. It owns its pipeliner; nothing
// referencing it outlives the orchestration call.
type scope struct {
	id   string
	mode command.Mode
	pipe redis.Pipeliner
	done chan struct{}
}

func openScope(mode command.Mode, pipe redis.Pipeliner) *scope {
	return &scope{
		id:   uuid.NewString(),
		mode: mode,
		pipe: pipe,
		done: make(chan struct{}),
	}
}

// release closes the queued surface and drops anything still buffered.
// After Exec the buffer is already empty, so this only matters on failure paths.
func (sc *scope) release() {
	close(sc.done)
	sc.pipe.Discard()
}

// Multi queues the commands issued by fn and executes them atomically.
//
// fn receives a queued surface: its calls record commands and return nil, and
// nothing reaches the server until fn returns. fn's own return value is
// independent of the batch and is returned as Outcome.Value.
//
// Failures anywhere (building the surface, fn returning an error or panicking,
// a cancelled context, a rejected transaction, a transport error) return a
// *command.Error and no Outcome; the queued commands are discarded. Reply
// errors of individual commands (WRONGTYPE, missing keys) are not failures;
// they are reported in their Result. If a key given with Watch changed, the
// Outcome has Aborted set and no error.
//
// Example:
//
//	out, err := store.Multi(ctx, st, func(tx *store.Surface) (string, error) {
//	    tx.Do(ctx, "Set", "k", "v", 0)
//	    tx.Do(ctx, "Get", "k")
//	    return "done", nil
//	})
//	// out.Value == "done", out.Results[1].Value == "v"
func Multi[T any](ctx context.Context, s *Store, fn func(tx *Surface) (T, error), opts ...TxOption) (Outcome[T], error) {
	var o txOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.watch) == 0 {
		return run(ctx, s, command.ModeMulti, s.client.TxPipeline(), nil, fn)
	}

	var (
		out    Outcome[T]
		runErr error
	)
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		out, runErr = run(ctx, s, command.ModeMulti, tx.TxPipeline(), tx, fn)
		return runErr
	}, o.watch...)
	if runErr != nil {
		return Outcome[T]{}, runErr
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "watch failed", logger.Mode(string(command.ModeMulti)), logger.Error(err))
		return Outcome[T]{}, command.Wrap("watch", command.ModeMulti, err)
	}
	return out, nil
}

// Pipeline queues the commands issued by fn and sends them in one batch
// without atomicity. It follows the same rules as Multi, except that a
// pipeline is never Aborted.
//
// Example:
//
//	out, err := store.Pipeline(ctx, st, func(tx *store.Surface) (int, error) {
//	    tx.Do(ctx, "Set", "a", "1", 0)
//	    return 42, nil
//	})
//	// out.Value == 42, out.Len() == 1
func Pipeline[T any](ctx context.Context, s *Store, fn func(tx *Surface) (T, error)) (Outcome[T], error) {
	return run(ctx, s, command.ModePipeline, s.client.Pipeline(), nil, fn)
}

func run[T any](
	ctx context.Context,
	s *Store,
	mode command.Mode,
	pipe redis.Pipeliner,
	watched redis.Cmdable,
	fn func(tx *Surface) (T, error),
) (Outcome[T], error) {
	start := time.Now()
	sc := openScope(mode, pipe)
	defer sc.release()

	log := s.logger.With(logger.Scope(sc.id), logger.Mode(string(mode)))
	log.DebugContext(ctx, "scope opened")

	fail := func(stage string, err error) (Outcome[T], error) {
		log.ErrorContext(ctx, "scope failed",
			logger.Key("stage", stage),
			logger.Elapsed(start),
			logger.Error(err))
		return Outcome[T]{}, command.Wrap(stage, mode, err)
	}

	tx, err := newSurface(pipe, command.Queued(sc.done), s.buildOpts...)
	if err != nil {
		return fail("build", err)
	}
	if watched != nil {
		if tx.watched, err = newSurface(watched, command.Immediate(), s.buildOpts...); err != nil {
			return fail("build", err)
		}
	}

	value, err := compose(tx, fn)
	if err != nil {
		return fail("compose", err)
	}

	// Cancelled before Execute: release discards the batch, nothing was sent.
	if err := ctx.Err(); err != nil {
		return fail("exec", err)
	}

	queued := pipe.Len()
	cmds, err := pipe.Exec(ctx)

	switch {
	case err == nil:
	case mode == command.ModeMulti && errors.Is(err, redis.TxFailedErr):
		log.DebugContext(ctx, "transaction aborted", logger.Count("commands", queued), logger.Elapsed(start))
		return Outcome[T]{Value: value, Aborted: true}, nil
	case mode == command.ModeMulti && isExecAbort(err):
		return fail("exec", fmt.Errorf("%w: %w", ErrTransactionRejected, err))
	case command.IsReplyError(err):
		// Per-command reply errors stay in their Result.
	default:
		return fail("exec", err)
	}

	out := Outcome[T]{Value: value, Results: newResults(mode, cmds)}

	log.DebugContext(ctx, "scope executed",
		logger.Count("commands", len(out.Results)),
		logger.Elapsed(start))

	return out, nil
}

// compose runs fn, turning a panic into an error so the scope is still released.
func compose[T any](tx *Surface, fn func(tx *Surface) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComposePanicked, r)
		}
	}()
	return fn(tx)
}

func isExecAbort(err error) bool {
	return strings.HasPrefix(err.Error(), "EXECABORT")
}
