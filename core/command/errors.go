package command

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrUnknownCommand is returned when a command name does not resolve to a client method.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDuplicateCommand is returned when a family lists the same command twice.
	ErrDuplicateCommand = errors.New("duplicate command")

	// ErrUnsupportedCommand is returned when a client method does not have the
	// func(context.Context, ...) redis.Cmder shape.
	ErrUnsupportedCommand = errors.New("unsupported command signature")

	// ErrInvalidArgument is returned when call arguments do not fit the command signature.
	ErrInvalidArgument = errors.New("invalid command argument")

	// ErrScopeClosed is returned when a queued surface is used after its scope finished.
	ErrScopeClosed = errors.New("transaction scope is closed")

	// ErrCommandPanicked is returned when the underlying client panics while building a command.
	ErrCommandPanicked = errors.New("command panicked")
)

// Error is the single failure kind produced by every command and orchestration.
// It carries the command (or operation) name, the execution mode and the original cause.
type Error struct {
	Command string
	Mode    Mode
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("kv %s %s: %v", e.Mode, e.Command, e.Err)
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through the wrapper.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err wrapped into *Error. A nil err stays nil and an existing
// *Error is returned unchanged, so wrapping is idempotent.
func Wrap(command string, mode Mode, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Command: command, Mode: mode, Err: err}
}

// IsNil reports whether err signals a missing key (redis.Nil).
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// IsReplyError reports whether err is a reply error sent by the server,
// as opposed to a transport, context or argument failure.
func IsReplyError(err error) bool {
	var rerr redis.Error
	return errors.As(err, &rerr)
}
