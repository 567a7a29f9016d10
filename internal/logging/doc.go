// Package logging provides structured logging for applywizard.
//
// This package wraps a zap logger with convenience functions for the common
// logging patterns of the wizard: remote page fetches, swallowed fetch
// failures, step commits and navigation.
//
// # Log Levels
//
//   - Debug: page requests, navigation between steps
//   - Info: pages applied to a loader, steps committed to the store
//   - Warn: fetch failures (the UI does not surface them)
//   - Error: startup failures
//
// # Configuration
//
// Logging is silent unless a level is provided by flag, config file or the
// APPLYWIZARD_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug", "/tmp/applywizard.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The full-screen wizard owns stdout, so output is written to a file.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
