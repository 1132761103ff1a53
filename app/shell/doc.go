// Package shell hosts the imperative shell around the catalog core.
//
// Service owns one *catalog.Catalog and makes it safe for concurrent callers
// by holding a single exclusive lock for the whole check-then-act sequence of
// every operation. Each operation is instrumented with the dependency-free
// observability interfaces defined here (Logger, ContextualLogger,
// MetricsCollector, TracingCollector), so hosts can plug in any backend.
// OpenTelemetry implementations live in the oteladapters subpackage.
//
// Business failures of the core are returned unchanged and can be classified
// with errors.Is against the catalog sentinels.
package shell
