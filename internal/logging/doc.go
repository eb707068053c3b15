// Package logging assembles the slog loggers used by the CLI and the bot.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stdout plus an optional log file), and exposes context helpers so request
// code tags every line with its request ID, command, and source URL.
package logging
