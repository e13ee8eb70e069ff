// Package command compiles fixed sets of store command names into dispatch tables
// with pluggable execution strategies, middleware support, and one unified error kind.
//
// # Core Concepts
//
// A Family is an ordered list of go-redis method names for one data-type family
// (strings, hashes, lists, ...). Build resolves every name against a client handle
// and adapts it through a Strategy into a Func with one calling convention:
//
//	func(ctx context.Context, args ...any) (any, error)
//
// The package provides:
//
//   - Two execution strategies (Immediate, Queued)
//   - Eleven flat families plus the nested JSON family
//   - Argument checking against the method signature at call time
//   - Immutable middleware configured at build time
//   - A single *Error type wrapping every failure cause
//
// # Quick Start
//
//	import "github.com/dmitrymomot/kvcmd/core/command"
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	strs, err := command.Build(command.Strings, command.Immediate(), client)
//	if err != nil {
//	    return err // ErrUnknownCommand: a family name has no client method
//	}
//
//	if _, err := strs.Do(ctx, "Set", "user:1", "alice", 0); err != nil {
//	    return err
//	}
//	name, err := strs.Do(ctx, "Get", "user:1") // "alice"
//
// # Immediate Strategy
//
// Immediate executes the command in the caller's goroutine and returns the reply
// value (the command's Val). Cancelling the call context aborts only that call.
//
// Characteristics:
//   - One round trip per call
//   - Safe for concurrent use when the handle is (*redis.Client is)
//   - A missing key is reported as *Error wrapping redis.Nil (see IsNil)
//
// # Queued Strategy
//
// Queued forwards each call to a redis.Pipeliner, which records the command
// without executing it. The call returns (nil, nil); replies arrive when the
// batch is executed. After the done channel passed to Queued is closed, calls
// fail with ErrScopeClosed.
//
// Characteristics:
//   - No I/O until the pipeliner executes
//   - Not safe for concurrent use
//   - Call order is execution order
//
// # Arguments
//
// Arguments are forwarded in order. They must be assignable to the method
// parameters; the only conversions applied are lossless ones (int to int64,
// int to time.Duration, int to float64, between string types). For variadic
// methods the trailing arguments fill the variadic parameter, and a single
// slice of the variadic type is spread:
//
//	strs.Do(ctx, "MGet", "a", "b", "c")
//	strs.Do(ctx, "MGet", []string{"a", "b", "c"})
//
// Mismatches fail with ErrInvalidArgument before anything is sent.
//
// # Middleware
//
// Middleware wraps every entry of a table and is fixed at build time.
//
// Built-in middleware:
//   - LoggingMiddleware: Logs command execution with timing
//   - MetricsMiddleware: VictoriaMetrics counters and duration histograms
//   - TimeoutMiddleware: Bounds each call with a deadline
//
// Example:
//
//	set := metrics.NewSet()
//	table, err := command.Build(command.Hashes, command.Immediate(), client,
//	    command.WithMiddleware(
//	        command.LoggingMiddleware(logger),
//	        command.MetricsMiddleware(set),
//	    ),
//	)
//
// # Error Handling
//
// Every failure is returned as *Error carrying the command, the mode, and the cause:
//
//	_, err := strs.Do(ctx, "Incr", "not-a-number")
//	var kvErr *command.Error
//	if errors.As(err, &kvErr) {
//	    log.Println(kvErr.Command, kvErr.Err)
//	}
//
// Sentinel errors for errors.Is:
//   - ErrUnknownCommand: Name does not resolve to a client method
//   - ErrDuplicateCommand: Name listed twice in a family
//   - ErrUnsupportedCommand: Method does not return a redis.Cmder
//   - ErrInvalidArgument: Arguments do not fit the method signature
//   - ErrScopeClosed: Queued call after its scope finished
//   - ErrCommandPanicked: The client panicked while building the command
package command
