package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/dmitrymomot/kvcmd/core/command"
)

// ErrUnsupportedArgument is returned when a command parameter cannot be typed on a command line.
var ErrUnsupportedArgument = errors.New("argument type not supported on the command line")

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
	bytesType    = reflect.TypeFor[[]byte]()
)

// ParseArgs converts command-line strings to the parameter types of sig.
// Variadic parameters take every remaining string; so does a trailing
// non-variadic slice parameter.
func ParseArgs(sig command.Signature, raw []string) ([]any, error) {
	params := sig.Params
	args := make([]any, 0, len(raw))

	for i, p := range params {
		last := i == len(params)-1

		if last && (sig.Variadic || (p.Kind() == reflect.Slice && p != bytesType)) {
			elem := p.Elem()
			rest := raw[min(i, len(raw)):]
			if !sig.Variadic {
				slice := reflect.MakeSlice(p, 0, len(rest))
				for j, s := range rest {
					v, err := parseValue(s, elem)
					if err != nil {
						return nil, fmt.Errorf("argument %d: %w", i+j+1, err)
					}
					slice = reflect.Append(slice, v)
				}
				return append(args, slice.Interface()), nil
			}
			for j, s := range rest {
				v, err := parseValue(s, elem)
				if err != nil {
					return nil, fmt.Errorf("argument %d: %w", i+j+1, err)
				}
				args = append(args, v.Interface())
			}
			return args, nil
		}

		if i >= len(raw) {
			return nil, fmt.Errorf("%w: missing argument %d (%s)", command.ErrInvalidArgument, i+1, p)
		}
		v, err := parseValue(raw[i], p)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args = append(args, v.Interface())
	}

	if len(raw) > len(params) {
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", command.ErrInvalidArgument, len(params), len(raw))
	}
	return args, nil
}

func parseValue(s string, t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	switch t {
	case durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			// Plain integers are seconds, as redis-cli users expect.
			secs, intErr := strconv.ParseInt(s, 10, 64)
			if intErr != nil {
				return v, fmt.Errorf("%w: %q is not a duration", command.ErrInvalidArgument, s)
			}
			d = time.Duration(secs) * time.Second
		}
		v.SetInt(int64(d))
		return v, nil
	case timeType:
		tm, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return v, fmt.Errorf("%w: %q is not an RFC3339 time", command.ErrInvalidArgument, s)
		}
		v.Set(reflect.ValueOf(tm))
		return v, nil
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Interface:
		if !reflect.TypeFor[string]().AssignableTo(t) {
			return v, fmt.Errorf("%w: %s", ErrUnsupportedArgument, t)
		}
		v.Set(reflect.ValueOf(s))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return v, fmt.Errorf("%w: %q is not a %s", command.ErrInvalidArgument, s, t)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return v, fmt.Errorf("%w: %q is not a %s", command.ErrInvalidArgument, s, t)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return v, fmt.Errorf("%w: %q is not a %s", command.ErrInvalidArgument, s, t)
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v, fmt.Errorf("%w: %q is not a bool", command.ErrInvalidArgument, s)
		}
		v.SetBool(b)
	case reflect.Slice:
		if t.Elem().Kind() != reflect.Uint8 {
			return v, fmt.Errorf("%w: %s", ErrUnsupportedArgument, t)
		}
		v.SetBytes([]byte(s))
	default:
		return v, fmt.Errorf("%w: %s", ErrUnsupportedArgument, t)
	}

	return v, nil
}
