// Package logger provides logging facilities for commitgen.
//
// It separates two audiences. Diagnostic messages (Info, Warning, Error) are
// written as zerolog JSON lines to a debug log file when debug logging is
// enabled. User-facing messages (InfoToUser, WarningToUser, Success,
// StatusMessage) are always printed to the terminal with a short emoji
// prefix, and are also recorded in the log file.
//
// # Usage
//
//	log := logger.New(cfg.Debug, cfg.LogFile, cfg.Verbose)
//	defer log.Close()
//
//	log.Info("job %s started", id)       // log file only
//	log.InfoToUser("Creating %d commits", n) // terminal and log file
//	log.Error("push failed: %v", err)    // stderr and log file
//
// Callers must redact secrets before logging; the logger writes what it is
// given.
//
// DefaultLogger is safe for concurrent use.
package logger
