package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kvcmd/core/logger"
)

// Table maps every command of one family to a callable for one execution mode.
// A table is bound to a single handle and is read-only after Build, so it is
// safe for concurrent lookups. Whether calls are concurrency safe depends on the handle.
type Table struct {
	family   string
	mode     Mode
	names    []string
	entries  map[string]Func
	bindings map[string]*Binding
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	middleware []Middleware
	logger     *slog.Logger
}

// WithMiddleware wraps every table entry. The first middleware is the outermost.
// Middleware is fixed at build time and cannot be changed later.
//
// Example:
//
//	table, err := command.Build(command.Strings, command.Immediate(), client,
//	    command.WithMiddleware(command.LoggingMiddleware(logger)),
//	)
func WithMiddleware(middleware ...Middleware) Option {
	return func(o *buildOptions) {
		o.middleware = append(o.middleware, middleware...)
	}
}

// WithLogger sets the logger used to report build results.
// If not set, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Build compiles a family into a dispatch table bound to handle.
// Every name must resolve to a method of handle, otherwise Build fails with
// ErrUnknownCommand and returns no table. Build performs no I/O.
//
// Example:
//
//	table, err := command.Build(command.Strings, command.Immediate(), client)
//	if err != nil {
//	    return err
//	}
//	val, err := table.Do(ctx, "Get", "user:1")
func Build(f Family, s Strategy, handle redis.Cmdable, opts ...Option) (*Table, error) {
	o := buildOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		family:   f.Name,
		mode:     s.Mode(),
		names:    f.Names(),
		entries:  make(map[string]Func, f.Len()),
		bindings: make(map[string]*Binding, f.Len()),
	}

	for _, name := range t.names {
		if _, exists := t.entries[name]; exists {
			return nil, fmt.Errorf("family %s: %w: %s", f.Name, ErrDuplicateCommand, name)
		}

		b, err := Bind(handle, f.Method(name))
		if err != nil {
			return nil, fmt.Errorf("family %s: %w", f.Name, err)
		}

		fn := s.Adapt(b)
		if len(o.middleware) > 0 {
			fn = chainMiddleware(f.Method(name), s.Mode(), fn, o.middleware)
		}

		t.entries[name] = fn
		t.bindings[name] = b
	}

	o.logger.Debug("command table built",
		logger.Family(f.Name),
		logger.Mode(string(t.mode)),
		logger.Count("commands", len(t.names)))

	return t, nil
}

// MustBuild is like Build but panics on error.
// Use it for families known at compile time, where a failure is a programming error.
func MustBuild(f Family, s Strategy, handle redis.Cmdable, opts ...Option) *Table {
	t, err := Build(f, s, handle, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Family returns the name of the family the table was built from.
func (t *Table) Family() string {
	return t.family
}

// Mode returns the execution mode of the table entries.
func (t *Table) Mode() Mode {
	return t.mode
}

// Names returns the command names in family order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.names)
}

// Lookup returns the callable for name.
func (t *Table) Lookup(name string) (Func, bool) {
	fn, ok := t.entries[name]
	return fn, ok
}

// Signature returns the parameter types of name after the context.
func (t *Table) Signature(name string) (Signature, bool) {
	b, ok := t.bindings[name]
	if !ok {
		return Signature{}, false
	}
	return b.Signature(), true
}

// Do calls the entry for name. Unknown names fail with *Error wrapping ErrUnknownCommand.
func (t *Table) Do(ctx context.Context, name string, args ...any) (any, error) {
	fn, ok := t.entries[name]
	if !ok {
		return nil, Wrap(name, t.mode, fmt.Errorf("%w: %s.%s", ErrUnknownCommand, t.family, name))
	}
	return fn(ctx, args...)
}
