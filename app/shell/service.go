package shell

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

// ErrNilCatalog is returned by NewService when no catalog is supplied.
var ErrNilCatalog = errors.New("catalog must not be nil")

// Service serializes access to one catalog and instruments every operation.
//
// Every operation first checks the context and returns its error without touching the catalog,
// then runs the catalog call while holding the lock, and finally records metrics, finishes the span and logs.
type Service struct {
	mu               sync.Mutex
	catalog          *catalog.Catalog
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
	logger           Logger
}

// Option defines a functional option for configuring Service.
type Option func(*Service) error

// WithMetrics sets the metrics collector for the Service.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Service) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Service.
func WithTracing(collector TracingCollector) Option {
	return func(s *Service) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogging sets the contextual logger for the Service. It takes precedence over WithLogging.
func WithContextualLogging(logger ContextualLogger) Option {
	return func(s *Service) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithLogging sets the basic logger for the Service.
func WithLogging(logger Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// NewService creates a Service owning c. The caller must not use c directly afterwards.
func NewService(c *catalog.Catalog, options ...Option) (*Service, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}

	s := &Service{catalog: c}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Name returns the display name of the catalog.
func (s *Service) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.Name()
}

// AddBook adds book and reports whether it was inserted. A duplicate ISBN is recorded as idempotent.
func (s *Service) AddBook(ctx context.Context, book catalog.Book) (bool, error) {
	var added bool

	err := s.run(ctx, OperationAddBook, func(c *catalog.Catalog) (bool, error) {
		added = c.AddBook(book)
		return !added, nil
	})

	return added, err
}

// RemoveBook removes the book with isbn.
func (s *Service) RemoveBook(ctx context.Context, isbn string) error {
	return s.run(ctx, OperationRemoveBook, func(c *catalog.Catalog) (bool, error) {
		return false, c.RemoveBook(isbn)
	})
}

// FindBooks returns the books selected by query.
func (s *Service) FindBooks(ctx context.Context, query catalog.BookQuery) ([]catalog.Book, error) {
	var books []catalog.Book

	err := s.run(ctx, OperationFindBooks, func(c *catalog.Catalog) (bool, error) {
		books = c.FindBooks(query)
		return false, nil
	})

	return books, err
}

// RegisterReader registers reader and reports whether it was inserted. A duplicate card number is recorded as idempotent.
func (s *Service) RegisterReader(ctx context.Context, reader catalog.Reader) (bool, error) {
	var registered bool

	err := s.run(ctx, OperationRegisterReader, func(c *catalog.Catalog) (bool, error) {
		registered = c.RegisterReader(reader)
		return !registered, nil
	})

	return registered, err
}

// RegisterNewReader creates a reader with a card number from the catalog's card number source and registers it.
// A drawn card number that is already registered fails with catalog.ErrConflict.
func (s *Service) RegisterNewReader(ctx context.Context, firstName string, lastName string) (catalog.Reader, error) {
	var reader catalog.Reader

	err := s.run(ctx, OperationRegisterNewReader, func(c *catalog.Catalog) (bool, error) {
		var err error
		reader, err = c.RegisterNewReader(firstName, lastName)

		return false, err
	})

	return reader, err
}

// DeregisterReader removes every registered reader sharing reader's card number.
func (s *Service) DeregisterReader(ctx context.Context, reader catalog.Reader) error {
	return s.run(ctx, OperationDeregisterReader, func(c *catalog.Catalog) (bool, error) {
		return false, c.DeregisterReader(reader)
	})
}

// FindReaders returns the registered readers selected by query.
func (s *Service) FindReaders(ctx context.Context, query catalog.ReaderQuery) ([]catalog.Reader, error) {
	var readers []catalog.Reader

	err := s.run(ctx, OperationFindReaders, func(c *catalog.Catalog) (bool, error) {
		readers = c.FindReaders(query)
		return false, nil
	})

	return readers, err
}

// Borrow lends the book with isbn to reader and returns the loan it created.
func (s *Service) Borrow(ctx context.Context, isbn string, reader catalog.Reader) (catalog.Loan, error) {
	var loan catalog.Loan

	err := s.run(ctx, OperationBorrow, func(c *catalog.Catalog) (bool, error) {
		if err := c.Borrow(isbn, reader); err != nil {
			return false, err
		}

		loan, _ = c.LoanOf(isbn)

		return false, nil
	})

	return loan, err
}

// ReturnBook ends the loan of the book with isbn.
func (s *Service) ReturnBook(ctx context.Context, isbn string, reader catalog.Reader) error {
	return s.run(ctx, OperationReturnBook, func(c *catalog.Catalog) (bool, error) {
		return false, c.ReturnBook(isbn, reader)
	})
}

// Loans returns the active loans in loan order.
func (s *Service) Loans(ctx context.Context) ([]catalog.Loan, error) {
	var loans []catalog.Loan

	err := s.run(ctx, OperationLoans, func(c *catalog.Catalog) (bool, error) {
		loans = c.Loans()
		return false, nil
	})

	return loans, err
}

// Render returns the display text of the catalog.
func (s *Service) Render(ctx context.Context) (string, error) {
	var rendered string

	err := s.run(ctx, OperationRender, func(c *catalog.Catalog) (bool, error) {
		rendered = c.Render()
		return false, nil
	})

	return rendered, err
}

// run executes op under the lock with full instrumentation. op reports whether the call was idempotent.
func (s *Service) run(ctx context.Context, operationType string, op func(c *catalog.Catalog) (bool, error)) error {
	operationID := uuid.NewString()
	start := time.Now()
	ctx, span := StartOperationSpan(ctx, s.tracingCollector, operationType, operationID)
	LogOperationStart(ctx, s.logger, s.contextualLogger, operationType, operationID)

	if err := ctx.Err(); err != nil {
		s.recordError(ctx, operationType, operationID, err, time.Since(start), span)
		return err
	}

	s.mu.Lock()
	idempotent, err := op(s.catalog)
	activeLoans := len(s.catalog.Loans())
	s.mu.Unlock()

	if err != nil {
		s.recordError(ctx, operationType, operationID, err, time.Since(start), span)
		return err
	}

	if operationType == OperationBorrow || operationType == OperationReturnBook {
		RecordActiveLoans(ctx, s.metricsCollector, activeLoans)
	}

	status := StatusSuccess
	if idempotent {
		status = StatusIdempotent
	}

	s.recordSuccess(ctx, operationType, operationID, status, time.Since(start), span)

	return nil
}

/*** Observability helper methods ***/

func (s *Service) recordSuccess(
	ctx context.Context,
	operationType string,
	operationID string,
	status string,
	duration time.Duration,
	span SpanContext,
) {
	RecordOperationMetrics(ctx, s.metricsCollector, operationType, status, duration, nil)
	FinishOperationSpan(s.tracingCollector, span, status, duration, nil)
	LogOperationSuccess(ctx, s.logger, s.contextualLogger, operationType, operationID, status, duration)
}

func (s *Service) recordError(
	ctx context.Context,
	operationType string,
	operationID string,
	err error,
	duration time.Duration,
	span SpanContext,
) {
	status := StatusOf(err)

	RecordOperationMetrics(ctx, s.metricsCollector, operationType, status, duration, err)
	FinishOperationSpan(s.tracingCollector, span, status, duration, err)
	LogOperationError(ctx, s.logger, s.contextualLogger, operationType, operationID, status, duration, err)
}
