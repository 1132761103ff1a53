package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const (
	// OperationDurationMetric tracks catalog operation duration (OpenTelemetry-compatible).
	OperationDurationMetric = "catalog_operation_duration_seconds"

	// OperationCallsMetric tracks total catalog operation calls.
	OperationCallsMetric = "catalog_operation_calls_total"

	// OperationIdempotentMetric tracks adds and registrations that found the key already present.
	OperationIdempotentMetric = "catalog_idempotent_operations_total"

	// ActiveLoansMetric tracks the size of the loan ledger after each borrow and return.
	ActiveLoansMetric = "catalog_active_loans"

	// StatusSuccess indicates successful operation completion.
	StatusSuccess = "success"

	// StatusError indicates a business or infrastructure failure.
	StatusError = "error"

	// StatusIdempotent indicates no state change was needed.
	StatusIdempotent = "idempotent"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// LogMsgOperationStarted is logged when an operation begins.
	LogMsgOperationStarted = "catalog operation started"

	// LogMsgOperationCompleted is logged when an operation succeeds.
	LogMsgOperationCompleted = "catalog operation completed"

	// LogMsgOperationFailed is logged when an operation fails.
	LogMsgOperationFailed = "catalog operation failed"

	// LogAttrOperationType identifies the operation in logs, metric labels and span attributes.
	LogAttrOperationType = "operation_type"

	// LogAttrOperationID correlates the log lines of one operation.
	LogAttrOperationID = "operation_id"

	// LogAttrStatus indicates the operation status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// LogAttrErrorKind classifies failures, see catalog.KindOf.
	LogAttrErrorKind = "error_kind"

	// SpanNameOperation is the tracing span name of every catalog operation.
	SpanNameOperation = "catalog.operation"
)

// Operation types.
const (
	OperationAddBook           = "AddBook"
	OperationRemoveBook        = "RemoveBook"
	OperationFindBooks         = "FindBooks"
	OperationRegisterReader    = "RegisterReader"
	OperationRegisterNewReader = "RegisterNewReader"
	OperationDeregisterReader  = "DeregisterReader"
	OperationFindReaders       = "FindReaders"
	OperationBorrow            = "Borrow"
	OperationReturnBook        = "ReturnBook"
	OperationLoans             = "Loans"
	OperationRender            = "Render"
)

// BuildOperationLabels creates standard metric labels for catalog operations.
func BuildOperationLabels(operationType, status string) map[string]string {
	return map[string]string{
		LogAttrOperationType: operationType,
		LogAttrStatus:        status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// StatusOf maps an operation error to its status label.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	default:
		return StatusError
	}
}

// RecordOperationMetrics records duration and call count of an operation.
// It handles both context-aware and basic metrics collectors automatically.
func RecordOperationMetrics(
	ctx context.Context,
	collector MetricsCollector,
	operationType string,
	status string,
	duration time.Duration,
	err error,
) {
	if collector == nil {
		return
	}

	labels := BuildOperationLabels(operationType, status)
	if status == StatusError {
		labels[LogAttrErrorKind] = catalog.KindOf(err)
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, OperationDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, OperationCallsMetric, labels)
	} else {
		collector.RecordDuration(OperationDurationMetric, duration, labels)
		collector.IncrementCounter(OperationCallsMetric, labels)
	}

	if status == StatusIdempotent {
		idempotentLabels := BuildOperationLabels(operationType, StatusIdempotent)
		if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, OperationIdempotentMetric, idempotentLabels)
		} else {
			collector.IncrementCounter(OperationIdempotentMetric, idempotentLabels)
		}
	}
}

// RecordActiveLoans records the current number of active loans as a gauge value.
func RecordActiveLoans(ctx context.Context, collector MetricsCollector, activeLoans int) {
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, ActiveLoansMetric, float64(activeLoans), nil)
	} else {
		collector.RecordValue(ActiveLoansMetric, float64(activeLoans), nil)
	}
}

// StartOperationSpan starts a tracing span for a catalog operation.
// Returns the updated context and span context, or the original context and nil if tracing is disabled.
func StartOperationSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	operationType string,
	operationID string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{
		LogAttrOperationType: operationType,
		LogAttrOperationID:   operationID,
	}

	return tracingCollector.StartSpan(ctx, SpanNameOperation, attrs)
}

// FinishOperationSpan completes a tracing span with the operation outcome.
func FinishOperationSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
		attrs[LogAttrErrorKind] = catalog.KindOf(err)
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogOperationStart logs the beginning of an operation.
func LogOperationStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	operationType string,
	operationID string,
) {
	args := []any{
		LogAttrOperationType, operationType,
		LogAttrOperationID, operationID,
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgOperationStarted, args...)
	} else if logger != nil {
		logger.Info(LogMsgOperationStarted, args...)
	}
}

// LogOperationSuccess logs successful operation completion.
func LogOperationSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	operationType string,
	operationID string,
	status string,
	duration time.Duration,
) {
	args := []any{
		LogAttrOperationType, operationType,
		LogAttrOperationID, operationID,
		LogAttrStatus, status,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgOperationCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgOperationCompleted, args...)
	}
}

// LogOperationError logs operation failures.
// Business failures are expected outcomes and logged at warn level, everything else at error level.
func LogOperationError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	operationType string,
	operationID string,
	status string,
	duration time.Duration,
	err error,
) {
	args := []any{
		LogAttrOperationType, operationType,
		LogAttrOperationID, operationID,
		LogAttrStatus, status,
		LogAttrDurationMS, ToMilliseconds(duration),
		LogAttrError, err.Error(),
		LogAttrErrorKind, catalog.KindOf(err),
	}

	if IsBusinessError(err) {
		if contextualLogger != nil {
			contextualLogger.WarnContext(ctx, LogMsgOperationFailed, args...)
		} else if logger != nil {
			logger.Warn(LogMsgOperationFailed, args...)
		}

		return
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgOperationFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgOperationFailed, args...)
	}
}

// formatDurationMS formats duration in milliseconds for span attributes.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsBusinessError checks if an error is one of the catalog failure kinds.
func IsBusinessError(err error) bool {
	var catalogErr *catalog.Error
	return errors.As(err, &catalogErr)
}
