package cli_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kvcmd/core/command"
	"github.com/dmitrymomot/kvcmd/internal/cli"
)

func sig(variadic bool, params ...reflect.Type) command.Signature {
	return command.Signature{Params: params, Variadic: variadic}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	str := reflect.TypeFor[string]()
	anyT := reflect.TypeFor[any]()
	i64 := reflect.TypeFor[int64]()
	u64 := reflect.TypeFor[uint64]()
	f64 := reflect.TypeFor[float64]()
	dur := reflect.TypeFor[time.Duration]()
	tm := reflect.TypeFor[time.Time]()

	tests := []struct {
		name    string
		sig     command.Signature
		raw     []string
		want    []any
		wantErr error
	}{
		{
			name: "set",
			sig:  sig(false, str, anyT, dur),
			raw:  []string{"k", "v", "10s"},
			want: []any{"k", "v", 10 * time.Second},
		},
		{
			name: "duration as seconds",
			sig:  sig(false, str, dur),
			raw:  []string{"k", "30"},
			want: []any{"k", 30 * time.Second},
		},
		{
			name: "numbers",
			sig:  sig(false, str, i64, u64, f64),
			raw:  []string{"k", "-5", "7", "1.5"},
			want: []any{"k", int64(-5), uint64(7), 1.5},
		},
		{
			name: "time",
			sig:  sig(false, str, tm),
			raw:  []string{"k", "2026-01-02T03:04:05Z"},
			want: []any{"k", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
		{
			name: "variadic strings",
			sig:  sig(true, reflect.TypeFor[[]string]()),
			raw:  []string{"a", "b", "c"},
			want: []any{"a", "b", "c"},
		},
		{
			name: "variadic empty",
			sig:  sig(true, str, reflect.TypeFor[[]any]()),
			raw:  []string{"k"},
			want: []any{"k"},
		},
		{
			name: "trailing slice",
			sig:  sig(false, i64, reflect.TypeFor[[]string]()),
			raw:  []string{"2", "x", "y"},
			want: []any{int64(2), []string{"x", "y"}},
		},
		{
			name: "bool",
			sig:  sig(false, reflect.TypeFor[bool]()),
			raw:  []string{"true"},
			want: []any{true},
		},
		{
			name:    "missing argument",
			sig:     sig(false, str, anyT),
			raw:     []string{"k"},
			wantErr: command.ErrInvalidArgument,
		},
		{
			name:    "too many arguments",
			sig:     sig(false, str),
			raw:     []string{"a", "b"},
			wantErr: command.ErrInvalidArgument,
		},
		{
			name:    "not a number",
			sig:     sig(false, str, i64),
			raw:     []string{"k", "ten"},
			wantErr: command.ErrInvalidArgument,
		},
		{
			name:    "negative unsigned",
			sig:     sig(false, u64),
			raw:     []string{"-1"},
			wantErr: command.ErrInvalidArgument,
		},
		{
			name:    "struct parameter",
			sig:     sig(false, str, reflect.TypeFor[*struct{ A int }]()),
			raw:     []string{"k", "x"},
			wantErr: cli.ErrUnsupportedArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cli.ParseArgs(tt.sig, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
