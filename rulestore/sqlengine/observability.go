package sqlengine

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/heliosip/countryrules/rulestore"
)

const (
	metricQueryDuration  = "rulestore_query_duration_seconds"
	metricQueryCalls     = "rulestore_query_calls_total"
	metricRowsLoaded     = "rulestore_rows_loaded"
	metricDatabaseErrors = "rulestore_database_errors_total"
	spanNamePrefix       = "rulestore."
	spanAttrOperation    = "operation"
	spanAttrDialect      = "db.system"
	spanAttrRowCount     = "row_count"
	spanAttrDurationMS   = "duration_ms"
	spanAttrErrorType    = "error_type"
	labelStatus          = "status"
	statusSuccess        = "success"
	statusError          = "error"
)

const (
	errorTypeBuildQuery      = "build_query"
	errorTypeDatabaseQuery   = "database_query"
	errorTypeRowScan         = "row_scan"
	errorTypeContextCanceled = "context_canceled"
	errorTypeContextTimeout  = "context_timeout"
)

// observe wraps one public operation with tracing, metrics and an info log on success.
func (rs RuleStore) observe(ctx context.Context, operation string, run func(ctx context.Context) (int, error)) error {
	ctx, span := rs.startSpan(ctx, operation)

	start := time.Now()
	rowCount, err := run(ctx)
	duration := time.Since(start)

	if err != nil {
		errorType := classifyError(err)
		rs.recordMetrics(ctx, operation, statusError, duration, 0)
		rs.recordErrorMetrics(ctx, operation, errorType)
		rs.finishSpan(span, statusError, map[string]string{
			spanAttrErrorType:  errorType,
			spanAttrDurationMS: formatMilliseconds(duration),
		})

		return err
	}

	rs.recordMetrics(ctx, operation, statusSuccess, duration, rowCount)
	rs.finishSpan(span, statusSuccess, map[string]string{
		spanAttrRowCount:   strconv.Itoa(rowCount),
		spanAttrDurationMS: formatMilliseconds(duration),
	})
	rs.logOperation(ctx, operation, logAttrRowCount, rowCount, logAttrDurationMS, toMilliseconds(duration))

	return nil
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return errorTypeContextCanceled

	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeContextTimeout

	case errors.Is(err, rulestore.ErrBuildingQueryFailed):
		return errorTypeBuildQuery

	case errors.Is(err, rulestore.ErrScanningDBRowFailed):
		return errorTypeRowScan

	default:
		return errorTypeDatabaseQuery
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (rs RuleStore) logQueryWithDuration(ctx context.Context, sqlQuery, table string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if rs.logger != nil {
		rs.logger.Debug(logMsgSQLExecuted+table, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+table, args...)
	}
}

// logOperation logs operational information at info level.
func (rs RuleStore) logOperation(ctx context.Context, operation string, args ...any) {
	if rs.logger != nil {
		rs.logger.Info(logMsgOperation+operation, args...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.InfoContext(ctx, logMsgOperation+operation, args...)
	}
}

func (rs RuleStore) logWarn(ctx context.Context, message string, err error) {
	if rs.logger != nil {
		rs.logger.Warn(message, logAttrError, err.Error())
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	}
}

func (rs RuleStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if rs.logger != nil {
		rs.logger.Error(message, allArgs...)
	}

	if rs.contextualLogger != nil {
		rs.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// recordMetrics records the duration, the call and the loaded row count of an operation.
func (rs RuleStore) recordMetrics(ctx context.Context, operation, status string, duration time.Duration, rowCount int) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	// Use context-aware methods if available
	if contextual, ok := rs.metricsCollector.(rulestore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricQueryDuration, duration, labels)
		contextual.IncrementCounterContext(ctx, metricQueryCalls, labels)
		if status == statusSuccess {
			contextual.RecordValueContext(ctx, metricRowsLoaded, float64(rowCount), labels)
		}

		return
	}

	rs.metricsCollector.RecordDuration(metricQueryDuration, duration, labels)
	rs.metricsCollector.IncrementCounter(metricQueryCalls, labels)
	if status == statusSuccess {
		rs.metricsCollector.RecordValue(metricRowsLoaded, float64(rowCount), labels)
	}
}

func (rs RuleStore) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if rs.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextual, ok := rs.metricsCollector.(rulestore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	rs.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

// startSpan starts a tracing span if the tracing collector is configured.
func (rs RuleStore) startSpan(ctx context.Context, operation string) (context.Context, rulestore.SpanContext) {
	if rs.tracingCollector == nil {
		return ctx, nil
	}

	return rs.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
		spanAttrOperation: operation,
		spanAttrDialect:   rs.dialectName,
	})
}

// finishSpan finishes a tracing span if the tracing collector is configured.
func (rs RuleStore) finishSpan(span rulestore.SpanContext, status string, attrs map[string]string) {
	if rs.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	for key, value := range attrs {
		span.AddAttribute(key, value)
	}

	rs.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(toMilliseconds(d), 'f', 2, 64)
}
