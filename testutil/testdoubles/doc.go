// Package testdoubles provides spies for the observability interfaces of app/shell
// and a capturing slog.Handler, for asserting on logs, metrics and spans in tests.
//
// All spies are safe for concurrent use.
package testdoubles
