package command

import (
	"context"
)

// Mode names an execution strategy.
type Mode string

const (
	// ModeImmediate executes each call against the server right away.
	ModeImmediate Mode = "immediate"
	// ModeQueued records each call in a batch that executes later.
	ModeQueued Mode = "queued"

	// ModeMulti labels failures of an atomic MULTI/EXEC orchestration.
	ModeMulti Mode = "multi"
	// ModePipeline labels failures of a non-atomic pipeline orchestration.
	ModePipeline Mode = "pipeline"
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// Func is the uniform calling convention of every table entry.
// args are the command arguments that follow the context in the go-redis method.
type Func func(ctx context.Context, args ...any) (any, error)

// Strategy turns a resolved binding into a callable for one execution mode.
// Different strategies share one naming convention:
//   - Immediate: the call is executed and its reply returned
//   - Queued: the call is appended to a batch and nothing is returned
type Strategy interface {
	Mode() Mode
	Adapt(b *Binding) Func
}

// immediateStrategy executes commands synchronously in the caller's goroutine.
// The context passed to each call is the cancellation boundary for that call only.
type immediateStrategy struct{}

// Immediate returns the strategy for a live client handle.
func Immediate() Strategy {
	return immediateStrategy{}
}

func (immediateStrategy) Mode() Mode {
	return ModeImmediate
}

func (immediateStrategy) Adapt(b *Binding) Func {
	name := b.Name()
	return func(ctx context.Context, args ...any) (any, error) {
		cmd, err := b.Invoke(ctx, args...)
		if err != nil {
			return nil, Wrap(name, ModeImmediate, err)
		}
		if err := cmd.Err(); err != nil {
			return nil, Wrap(name, ModeImmediate, err)
		}
		return Value(cmd), nil
	}
}

// queuedStrategy forwards calls to a pipeliner, which records them without executing.
// Not safe for concurrent use: the pipeliner is shared mutable state of one scope.
type queuedStrategy struct {
	done <-chan struct{}
}

// Queued returns the strategy for a queuing handle. Once done is closed
// every call fails with ErrScopeClosed. A nil done channel never closes.
func Queued(done <-chan struct{}) Strategy {
	return queuedStrategy{done: done}
}

func (queuedStrategy) Mode() Mode {
	return ModeQueued
}

func (s queuedStrategy) Adapt(b *Binding) Func {
	name := b.Name()
	return func(ctx context.Context, args ...any) (any, error) {
		select {
		case <-s.done:
			return nil, Wrap(name, ModeQueued, ErrScopeClosed)
		default:
		}

		// The queued cmd is the chaining handle; its reply arrives with the batch results.
		if _, err := b.Invoke(ctx, args...); err != nil {
			return nil, Wrap(name, ModeQueued, err)
		}
		return nil, nil
	}
}
