package command

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	cmderType   = reflect.TypeFor[redis.Cmder]()
)

// shapeKey identifies one method on one concrete handle type.
type shapeKey struct {
	handle reflect.Type
	method string
}

// methodShape is the resolved signature of a client method, without receiver and ctx.
type methodShape struct {
	index    int
	params   []reflect.Type
	variadic bool
}

// shapeCache memoises method resolution per handle type.
// Bindings are still created per handle; only the reflection lookup is shared.
var shapeCache = xsync.NewMapOf[shapeKey, methodShape]()

// Signature describes the arguments a command accepts after its context.
type Signature struct {
	Params   []reflect.Type
	Variadic bool
}

// Binding is a command name resolved against a concrete client handle.
type Binding struct {
	name   string
	method reflect.Value
	shape  methodShape
}

// Bind resolves method on handle. It performs no I/O.
func Bind(handle redis.Cmdable, method string) (*Binding, error) {
	if handle == nil {
		return nil, fmt.Errorf("%w: %s: nil handle", ErrUnknownCommand, method)
	}

	v := reflect.ValueOf(handle)
	shape, err := resolveShape(v.Type(), method)
	if err != nil {
		return nil, err
	}

	return &Binding{
		name:   method,
		method: v.Method(shape.index),
		shape:  shape,
	}, nil
}

func resolveShape(t reflect.Type, method string) (methodShape, error) {
	key := shapeKey{handle: t, method: method}
	if shape, ok := shapeCache.Load(key); ok {
		return shape, nil
	}

	m, ok := t.MethodByName(method)
	if !ok {
		return methodShape{}, fmt.Errorf("%w: %s", ErrUnknownCommand, method)
	}

	// In(0) is the receiver.
	mt := m.Type
	if mt.NumIn() < 2 || mt.In(1) != contextType || mt.NumOut() != 1 || !mt.Out(0).Implements(cmderType) {
		return methodShape{}, fmt.Errorf("%w: %s", ErrUnsupportedCommand, method)
	}

	params := make([]reflect.Type, 0, mt.NumIn()-2)
	for i := 2; i < mt.NumIn(); i++ {
		params = append(params, mt.In(i))
	}

	shape := methodShape{index: m.Index, params: params, variadic: mt.IsVariadic()}
	shapeCache.Store(key, shape)
	return shape, nil
}

// Name returns the client method name.
func (b *Binding) Name() string {
	return b.name
}

// Signature returns the command parameters after the context.
func (b *Binding) Signature() Signature {
	return Signature{
		Params:   append([]reflect.Type(nil), b.shape.params...),
		Variadic: b.shape.variadic,
	}
}

// Invoke checks args against the method signature and calls the method.
// For a client the call performs the round trip; for a pipeliner it only queues.
func (b *Binding) Invoke(ctx context.Context, args ...any) (cmd redis.Cmder, err error) {
	in, err := b.arguments(ctx, args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			cmd = nil
			err = fmt.Errorf("%w: %s: %v", ErrCommandPanicked, b.name, r)
		}
	}()

	out := b.method.Call(in)
	return out[0].Interface().(redis.Cmder), nil
}

func (b *Binding) arguments(ctx context.Context, args []any) ([]reflect.Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	params := b.shape.params
	fixed := len(params)
	if b.shape.variadic {
		fixed--
	}

	if len(args) < fixed || (!b.shape.variadic && len(args) > fixed) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArgument, b.name, fixed, len(args))
	}

	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, reflect.ValueOf(ctx))

	for i := 0; i < fixed; i++ {
		v, err := assign(args[i], params[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %d: %v", ErrInvalidArgument, b.name, i+1, err)
		}
		in = append(in, v)
	}

	if !b.shape.variadic {
		return in, nil
	}

	rest := args[fixed:]
	sliceType := params[fixed]

	// A single slice of the variadic type is spread, like f(xs...).
	if len(rest) == 1 && rest[0] != nil && reflect.TypeOf(rest[0]).AssignableTo(sliceType) {
		s := reflect.ValueOf(rest[0])
		for i := 0; i < s.Len(); i++ {
			in = append(in, s.Index(i))
		}
		return in, nil
	}

	for i, arg := range rest {
		v, err := assign(arg, sliceType.Elem())
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %d: %v", ErrInvalidArgument, b.name, fixed+i+1, err)
		}
		in = append(in, v)
	}

	return in, nil
}

// assign returns arg as a value assignable to t. Only lossless conversions
// are applied: integer widening, integer to float when the value round-trips,
// float narrowing when the value round-trips, and between string kinds.
func assign(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if lossless(v, t) {
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, t)
}

func lossless(v reflect.Value, t reflect.Type) bool {
	from, to := v.Kind(), t.Kind()
	switch {
	case isInt(from) && isInt(to):
		return !t.OverflowInt(v.Int())
	case isInt(from) && isUint(to):
		return v.Int() >= 0 && !t.OverflowUint(uint64(v.Int()))
	case isUint(from) && isUint(to):
		return !t.OverflowUint(v.Uint())
	case isUint(from) && isInt(to):
		return v.Uint() <= math.MaxInt64 && !t.OverflowInt(int64(v.Uint()))
	case isInt(from) && isFloat(to):
		f := v.Convert(t).Float()
		return f >= math.MinInt64 && f < math.MaxInt64 && int64(f) == v.Int()
	case isUint(from) && isFloat(to):
		f := v.Convert(t).Float()
		return f < math.MaxUint64 && uint64(f) == v.Uint()
	case isFloat(from) && isFloat(to):
		if math.IsNaN(v.Float()) {
			return true
		}
		return v.Convert(t).Float() == v.Float()
	case from == reflect.String && to == reflect.String:
		return true
	}
	return false
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// Value extracts the reply value of an executed command through its Val method.
// Commands whose Val returns several values (Scan, LMPop, ZMPop) yield them as []any.
func Value(cmd redis.Cmder) any {
	if cmd == nil {
		return nil
	}

	val := reflect.ValueOf(cmd).MethodByName("Val")
	if !val.IsValid() || val.Type().NumIn() != 0 {
		return nil
	}

	out := val.Call(nil)
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0].Interface()
	}

	vals := make([]any, len(out))
	for i, o := range out {
		vals[i] = o.Interface()
	}
	return vals
}
