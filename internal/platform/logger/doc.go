// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with a log level that can be changed at runtime when the configuration is reloaded.
package logger
