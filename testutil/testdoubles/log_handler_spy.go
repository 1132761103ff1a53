package testdoubles

import (
	"context"
	"log/slog"
	"sync"
)

type logStore struct {
	mu      sync.Mutex
	records []slog.Record
}

// LogHandlerSpy is a slog.Handler that captures log records for testing.
// Wrap it with slog.New to get a logger that satisfies both shell.Logger and shell.ContextualLogger.
// Handlers derived with WithAttrs share the captured records and add their attributes to each record.
type LogHandlerSpy struct {
	store *logStore
	attrs []slog.Attr
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
func NewLogHandlerSpy() *LogHandlerSpy {
	return &LogHandlerSpy{
		store: &logStore{records: make([]slog.Record, 0)},
	}
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	captured := record.Clone()
	captured.AddAttrs(s.attrs...)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.records = append(s.store.records, captured)

	return nil
}

// Enabled implements slog.Handler, all levels are captured.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler.
func (s *LogHandlerSpy) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	combined = append(combined, s.attrs...)
	combined = append(combined, attrs...)

	return &LogHandlerSpy{store: s.store, attrs: combined}
}

// WithGroup implements slog.Handler. Groups are not captured.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// GetRecords returns a copy of all captured log records.
func (s *LogHandlerSpy) GetRecords() []slog.Record {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	records := make([]slog.Record, len(s.store.records))
	copy(records, s.store.records)

	return records
}

// HasLog checks if a record with the given level and message was captured.
func (s *LogHandlerSpy) HasLog(level slog.Level, message string) bool {
	for _, record := range s.GetRecords() {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// AttrsOf returns the attributes of the first record with the given message as a string map.
func (s *LogHandlerSpy) AttrsOf(message string) map[string]string {
	for _, record := range s.GetRecords() {
		if record.Message != message {
			continue
		}

		attrs := make(map[string]string)
		record.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.String()
			return true
		})

		return attrs
	}

	return nil
}
