package store

import (
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kvcmd/core/command"
)

// Result is the reply of one queued command, in queue order.
type Result struct {
	Command string // lower-case server command, e.g. "set"
	Args    []any  // full argument list as sent, command name included
	Value   any
	Err     error // reply-level error, wrapped as *command.Error; nil on success
}

// OK reports whether the command succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Outcome is what Multi and Pipeline return: the value computed by the caller's
// function and the per-command results of the executed batch.
type Outcome[T any] struct {
	Value   T
	Results []Result
	// Aborted is set when the server discarded a MULTI because a watched key
	// changed. Results is nil then. Pipeline never sets it.
	Aborted bool
}

// Len returns the number of results.
func (o Outcome[T]) Len() int {
	return len(o.Results)
}

// Err returns the first per-command error, or nil.
func (o Outcome[T]) Err() error {
	for _, r := range o.Results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

func newResults(mode command.Mode, cmds []redis.Cmder) []Result {
	results := make([]Result, len(cmds))
	for i, cmd := range cmds {
		results[i] = Result{
			Command: cmd.Name(),
			Args:    cmd.Args(),
			Value:   command.Value(cmd),
			Err:     command.Wrap(cmd.Name(), mode, cmd.Err()),
		}
	}
	return results
}
