package store

import (
	"context"
	"fmt"
	"reflect"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kvcmd/core/command"
)

// Surface is the full set of commands available for one handle: every flat
// family merged into one namespace, with the JSON family kept under JSON().
//
// A surface built on the live client executes immediately and is safe for
// concurrent use. A surface passed to Multi or Pipeline queues, must be used
// from one goroutine, and stops working when the orchestration returns.
type Surface struct {
	mode    command.Mode
	tables  []*command.Table
	owners  map[string]*command.Table
	json    *command.Table
	watched *Surface
}

func newSurface(handle redis.Cmdable, s command.Strategy, opts ...command.Option) (*Surface, error) {
	families := command.Families()
	sf := &Surface{
		mode:   s.Mode(),
		tables: make([]*command.Table, 0, len(families)),
		owners: make(map[string]*command.Table),
	}

	for _, f := range families {
		t, err := command.Build(f, s, handle, opts...)
		if err != nil {
			return nil, err
		}
		for _, name := range t.Names() {
			if owner, exists := sf.owners[name]; exists {
				return nil, fmt.Errorf("%w: %s in %s and %s", command.ErrDuplicateCommand, name, owner.Family(), f.Name)
			}
			sf.owners[name] = t
		}
		sf.tables = append(sf.tables, t)
	}

	json, err := command.Build(command.JSON, s, handle, opts...)
	if err != nil {
		return nil, err
	}
	sf.json = json

	return sf, nil
}

// Mode returns the execution mode of every command on the surface.
func (s *Surface) Mode() command.Mode {
	return s.mode
}

// Do calls the named command. On an immediate surface it returns the reply;
// on a queued surface it records the command and returns nil.
//
// Example:
//
//	_, err := st.Do(ctx, "HSet", "user:1", "name", "alice")
//	name, err := st.Do(ctx, "HGet", "user:1", "name")
func (s *Surface) Do(ctx context.Context, name string, args ...any) (any, error) {
	t, ok := s.owners[name]
	if !ok {
		return nil, command.Wrap(name, s.mode, fmt.Errorf("%w: %s", command.ErrUnknownCommand, name))
	}
	return t.Do(ctx, name, args...)
}

// Lookup returns the callable for name.
func (s *Surface) Lookup(name string) (command.Func, bool) {
	t, ok := s.owners[name]
	if !ok {
		return nil, false
	}
	return t.Lookup(name)
}

// Signature returns the parameter types of name after the context.
func (s *Surface) Signature(name string) (command.Signature, bool) {
	t, ok := s.owners[name]
	if !ok {
		return command.Signature{}, false
	}
	return t.Signature(name)
}

// Has reports whether name is a flat command of the surface.
func (s *Surface) Has(name string) bool {
	_, ok := s.owners[name]
	return ok
}

// Names returns all flat command names, grouped by family in family order.
func (s *Surface) Names() []string {
	names := make([]string, 0, len(s.owners))
	for _, t := range s.tables {
		names = append(names, t.Names()...)
	}
	return names
}

// Tables returns the flat family tables in family order.
func (s *Surface) Tables() []*command.Table {
	return append([]*command.Table(nil), s.tables...)
}

// Table returns the table of one flat family.
func (s *Surface) Table(family string) (*command.Table, bool) {
	for _, t := range s.tables {
		if t.Family() == family {
			return t, true
		}
	}
	return nil, false
}

// JSON returns the nested document family. Its names are the short forms
// (Get, Set, Del, ...), which would collide with flat commands.
func (s *Surface) JSON() *command.Table {
	return s.json
}

// Watched returns an immediate surface bound to the connection that holds the
// WATCH of a Multi started with Watch. It is nil in every other case. Reads made
// through it happen after WATCH and before MULTI, the optimistic locking window.
func (s *Surface) Watched() *Surface {
	return s.watched
}

// Call is the typed form of Do for immediate surfaces: the reply is asserted to T.
// A reply of another type fails with command.ErrInvalidArgument.
//
// Example:
//
//	n, err := store.Call[int64](ctx, st.Surface, "Incr", "visits")
func Call[T any](ctx context.Context, s *Surface, name string, args ...any) (T, error) {
	var zero T
	v, err := s.Do(ctx, name, args...)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, command.Wrap(name, s.mode, fmt.Errorf("%w: reply is %T, not %s",
			command.ErrInvalidArgument, v, reflect.TypeFor[T]()))
	}
	return typed, nil
}
