// Package log provides crawl logging built on top of the standard slog
// package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (page snippets,
//     store descriptions, long URL lists)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// A crawler routinely logs values derived from fetched pages. Left
// unchecked, a single description attribute can push a log line past
// several kilobytes and make the output unreadable. The TrimHandler caps
// every string attribute at a fixed length before it reaches the
// underlying handler.
//
// # Usage
//
//	// Create a logger for terminal output
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("detail fetched",
//	    "appID", "com.example.app",
//	    "description", longText, // truncated before output
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
