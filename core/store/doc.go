// Package store exposes every command of a Redis connection through one
// surface and adds two orchestrations built from the same commands: Multi
// (atomic MULTI/EXEC) and Pipeline (non-atomic batch).
//
// # Store
//
// New builds the immediate surface for a connected client and probes it once:
//
//	client, err := redis.Connect(ctx, cfg) // integration/database/redis
//	if err != nil {
//		return err
//	}
//
//	st, err := store.New(ctx, client, store.WithLogger(logger))
//	if err != nil {
//		return err // *command.Error wrapping store.ErrProbeFailed
//	}
//
//	st.Do(ctx, "Set", "user:1", "alice", 0)
//	name, err := store.Call[string](ctx, st.Surface, "Get", "user:1")
//	doc, err := st.JSON().Do(ctx, "Get", "profile:1", "$")
//
// Flat commands from all families share one namespace. The JSON family is
// nested under JSON() because its names (Get, Set, Del, Type) collide.
//
// # Multi and Pipeline
//
// Both run a caller function against a queued surface, then execute what it
// queued and return an Outcome: the function's own value plus one Result per
// queued command, in queue order.
//
//	out, err := store.Multi(ctx, st, func(tx *store.Surface) (int, error) {
//		tx.Do(ctx, "Incr", "counter")
//		tx.Do(ctx, "Expire", "counter", time.Minute)
//		return 1, nil
//	})
//	if err != nil {
//		return err
//	}
//	if out.Aborted {
//		// only possible with store.Watch
//	}
//	n := out.Results[0].Value.(int64)
//
// The function's value does not depend on the queued commands: a function may
// queue nothing and still return a value, and a constant return value does not
// stop the batch from executing.
//
// # Optimistic Locking
//
// Watch keys to make a Multi conditional. Reads go through tx.Watched(),
// which is bound to the watching connection:
//
//	out, err := store.Multi(ctx, st, func(tx *store.Surface) (any, error) {
//		bal, err := store.Call[string](ctx, tx.Watched(), "Get", "balance")
//		if err != nil && !command.IsNil(err) {
//			return nil, err
//		}
//		tx.Do(ctx, "Set", "balance", next(bal), 0)
//		return nil, nil
//	}, store.Watch("balance"))
//	if err == nil && out.Aborted {
//		// balance changed concurrently; retry if it makes sense
//	}
//
// # Errors
//
// Every failure is a *command.Error. Orchestrations fail as a whole, with no
// partial Outcome, when the surface cannot be built, the function returns an
// error or panics, the context is cancelled before execution, the server
// rejects the transaction (ErrTransactionRejected), or the connection fails.
// Reply errors of single commands are reported in their Result instead, and
// a discarded watched transaction is an Aborted Outcome, not an error.
//
// # Concurrency
//
// The immediate surface of a Store is safe for concurrent use. A queued
// surface belongs to its orchestration: use it from one goroutine and do not
// keep it; after Multi or Pipeline returns, its calls fail with
// command.ErrScopeClosed.
package store
