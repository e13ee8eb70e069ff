// Package logger provides structured logging helpers built on Go's standard slog package.
//
// New creates a text or JSON logger; the attribute helpers return an empty
// slog.Attr for zero values so they can be passed without nil checks:
//
//	import "github.com/dmitrymomot/kvcmd/core/logger"
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//	)
//
//	log.Info("transaction executed",
//		logger.Scope(scopeID),
//		logger.Mode("multi"),
//		logger.Count("commands", 3),
//		logger.Error(err), // omitted when err is nil
//	)
//
// Command-specific attributes:
//
//   - Command: store command name
//   - Family: command family name
//   - Mode: execution mode
//   - Scope: transaction scope identifier
package logger
