// Package logger provides a small leveled logger that writes to an attached
// console and/or an append-only log file.
//
// # Levels
//
// Levels are ordered TRACE < DEBUG < INFO < WARN < ERROR < FATAL < OFF. A
// message is written when its level is at or above Config.Threshold; a
// threshold of OffLevel silences everything. Fatal only logs, it never exits.
//
// # Output
//
// Every record is one line:
//
//	2024-05-01 12:00:00.000 [INFO] [Loader.Load:Line 42] Loading Assembly
//
// The bracketed caller label names the code that issued the call, as
// "Type.Method" for methods and "package.Function" for functions. It is
// "Unknown" when the stack cannot be resolved.
//
// Console lines are coloured per level (Config.Colorize); file lines are
// plain UTF-8, one per line, appended and never rotated.
//
// # Console
//
// On Windows the console is allocated on demand for processes that start
// without one. Elsewhere the console is standard output. Attachment counts as
// successful even when no window handle is available; ShowConsole and
// HideConsole then report false.
//
// # Usage
//
// The package-level functions use a process-wide Logger that configures
// itself with DefaultConfig on first use:
//
//	logger.Warn("boot")
//
// Initialize explicitly to enable the file sink:
//
//	cfg := logger.DefaultConfig()
//	cfg.FileEnabled = true
//	cfg.FilePath = "mod_log.txt"
//	logger.Init(cfg)
//	defer logger.CloseConsole()
//
// Logging never returns an error and never panics. Failures are absorbed;
// Logger.LastError exposes the most recent one.
package logger
