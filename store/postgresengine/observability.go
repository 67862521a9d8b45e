package postgresengine

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/bookstore/store"
)

const (
	metricOperationDuration    = "store_operation_duration_seconds"
	metricOperationRows        = "store_operation_rows"
	metricDatabaseErrors       = "store_database_errors_total"
	metricConcurrencyConflicts = "store_concurrency_conflicts_total"

	spanNamePrefix         = "store."
	spanAttrOperation      = "operation"
	spanAttrConsistency    = "consistency"
	spanAttrRows           = "rows"
	spanAttrErrorType      = "error_type"
	labelStatus            = "status"
	labelConflictType      = "conflict_type"
	conflictTypeOptimistic = "optimistic"

	statusSuccess             = "success"
	statusError               = "error"
	statusNotFound            = "not_found"
	statusDuplicateKey        = "duplicate_key"
	statusConcurrencyConflict = "concurrency_conflict"
	statusCanceled            = "canceled"
	statusTimeout             = "timeout"

	errorTypeBuildQuery  = "build_query"
	errorTypeQuery       = "query"
	errorTypeExec        = "exec"
	errorTypeScan        = "scan"
	errorTypeTransaction = "transaction"
	errorTypeUnknown     = "unknown"
)

// operationObserver carries the observability state of one store operation from start to finish.
type operationObserver struct {
	store     Store
	ctx       context.Context
	operation string
	start     time.Time
	span      store.SpanContext
}

// startOperation starts a tracing span (if configured) and the duration measurement for an operation.
func (s Store) startOperation(ctx context.Context, operation string) (context.Context, *operationObserver) {
	spanCtx, span := s.startTraceSpan(ctx, operation, map[string]string{
		spanAttrOperation:   operation,
		spanAttrConsistency: store.GetConsistencyLevel(ctx).String(),
	})

	return spanCtx, &operationObserver{
		store:     s,
		ctx:       spanCtx,
		operation: operation,
		start:     time.Now(),
		span:      span,
	}
}

// finish records metrics, finishes the span, and writes the contextual log entry for the operation.
// It returns err unchanged so callers can end with `return observer.finish(err, n)`.
func (o *operationObserver) finish(err error, rows int) error {
	duration := time.Since(o.start)
	status := statusOf(err)
	s := o.store

	s.recordDurationMetrics(o.ctx, duration, o.operation, status)

	switch status {
	case statusSuccess:
		s.recordValueMetrics(o.ctx, metricOperationRows, float64(rows), o.operation, status)
		s.finishTraceSpan(o.span, status, map[string]string{spanAttrRows: strconv.Itoa(rows)})
		s.logContextual(o.ctx, levelInfo, logMsgOperation+o.operation,
			logAttrRows, rows, logAttrDurationMS, toMilliseconds(duration))

	case statusConcurrencyConflict:
		s.recordConcurrencyConflictMetrics(o.ctx, o.operation)
		s.finishTraceSpan(o.span, status, nil)
		s.logContextual(o.ctx, levelInfo, logMsgConcurrencyConflict,
			logAttrOperation, o.operation, logAttrDurationMS, toMilliseconds(duration))

	case statusNotFound, statusDuplicateKey, statusCanceled, statusTimeout:
		s.finishTraceSpan(o.span, status, nil)
		s.logContextual(o.ctx, levelDebug, logMsgOperation+o.operation,
			logAttrStatus, status, logAttrDurationMS, toMilliseconds(duration))

	default:
		errorType := errorTypeOf(err)
		s.recordErrorMetrics(o.ctx, o.operation, errorType)
		s.finishTraceSpan(o.span, status, map[string]string{spanAttrErrorType: errorType})
		s.logContextual(o.ctx, levelError, logMsgOperation+o.operation,
			logAttrError, err.Error(), logAttrDurationMS, toMilliseconds(duration))
	}

	return err
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, store.ErrConcurrencyConflict):
		return statusConcurrencyConflict
	case errors.Is(err, store.ErrNotFound):
		return statusNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return statusDuplicateKey
	case errors.Is(err, context.Canceled):
		return statusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return statusTimeout
	default:
		return statusError
	}
}

func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, store.ErrBuildingQueryFailed):
		return errorTypeBuildQuery
	case errors.Is(err, store.ErrQueryingFailed):
		return errorTypeQuery
	case errors.Is(err, store.ErrExecFailed):
		return errorTypeExec
	case errors.Is(err, store.ErrScanningDBRowFailed), errors.Is(err, store.ErrRowsIterationFailed):
		return errorTypeScan
	case errors.Is(err, store.ErrTransactionFailed):
		return errorTypeTransaction
	default:
		return errorTypeUnknown
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s Store) logWarn(message string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (s Store) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelError
)

func (s Store) logContextual(ctx context.Context, level logLevel, msg string, args ...any) {
	if s.contextualLogger == nil {
		return
	}

	switch level {
	case levelDebug:
		s.contextualLogger.DebugContext(ctx, msg, args...)
	case levelInfo:
		s.contextualLogger.InfoContext(ctx, msg, args...)
	default:
		s.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s Store) recordDurationMetrics(ctx context.Context, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextualCollector, ok := s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (s Store) recordValueMetrics(ctx context.Context, metric string, value float64, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextualCollector, ok := s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

func (s Store) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusError, spanAttrErrorType: errorType}

	if contextualCollector, ok := s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

func (s Store) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelConflictType: conflictTypeOptimistic}

	if contextualCollector, ok := s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s Store) startTraceSpan(ctx context.Context, operation string, attrs map[string]string) (context.Context, store.SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s Store) finishTraceSpan(span store.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	s.tracingCollector.FinishSpan(span, status, attrs)
}
