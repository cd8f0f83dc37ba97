package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosip/countryrules/shared/shell"
	"github.com/heliosip/countryrules/shared/shell/observable"
	"github.com/heliosip/countryrules/testutil/helper"
)

type stubQuery struct{}

func (stubQuery) QueryType() string { return "StubQuery" }

type stubResult struct{ count int }

func (r stubResult) ResultCount() int { return r.count }

type stubHandler struct {
	result stubResult
	err    error
}

func (h stubHandler) Handle(_ context.Context, _ stubQuery) (stubResult, error) {
	return h.result, h.err
}

func Test_QueryWrapper_Success(t *testing.T) {
	// arrange
	metrics := helper.NewMetricsCollectorSpy()
	tracing := helper.NewTracingCollectorSpy()
	logSpy := helper.NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[stubQuery, stubResult](
		stubHandler{result: stubResult{count: 3}},
		observable.WithQueryMetrics[stubQuery, stubResult](metrics),
		observable.WithQueryTracing[stubQuery, stubResult](tracing),
		observable.WithQueryLogging[stubQuery, stubResult](slog.New(logSpy)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), stubQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.ResultCount())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel(shell.LogAttrQueryType, "StubQuery").WithStatus(shell.StatusSuccess).Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).WithStatus(shell.StatusSuccess).Assert())
	assert.False(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerEmptyResultMetric).Assert())
	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameQueryHandle).
		WithStatus(shell.StatusSuccess).
		WithStartAttribute(shell.LogAttrQueryType, "StubQuery").
		WithEndAttributeKey(shell.LogAttrResultCount).Assert())
	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgQueryStarted).Assert())
	assert.True(t, logSpy.HasInfoLogWithMessage(shell.LogMsgQueryCompleted).
		WithDurationMS().WithAttribute(shell.LogAttrResultCount).Assert())
}

func Test_QueryWrapper_EmptyResultIsNotAnError(t *testing.T) {
	// arrange
	metrics := helper.NewMetricsCollectorSpy()
	wrapper, err := observable.NewQueryWrapper[stubQuery, stubResult](
		stubHandler{},
		observable.WithQueryMetrics[stubQuery, stubResult](metrics),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), stubQuery{})

	// assert
	require.NoError(t, err)
	assert.Zero(t, result.ResultCount())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerEmptyResultMetric).WithStatus(shell.StatusSuccess).Assert())
}

func Test_QueryWrapper_ErrorStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status string
		metric string
	}{
		{name: "failure", err: errors.New("boom"), status: shell.StatusError},
		{name: "canceled", err: context.Canceled, status: shell.StatusCanceled, metric: shell.QueryHandlerCanceledMetric},
		{name: "timeout", err: context.DeadlineExceeded, status: shell.StatusTimeout, metric: shell.QueryHandlerTimeoutMetric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metrics := helper.NewMetricsCollectorSpy()
			tracing := helper.NewTracingCollectorSpy()
			logSpy := helper.NewLogHandlerSpy(false)

			wrapper, err := observable.NewQueryWrapper[stubQuery, stubResult](
				stubHandler{err: tc.err},
				observable.WithQueryMetrics[stubQuery, stubResult](metrics),
				observable.WithQueryTracing[stubQuery, stubResult](tracing),
				observable.WithQueryContextualLogging[stubQuery, stubResult](slog.New(logSpy)),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), stubQuery{})

			// assert
			require.ErrorIs(t, err, tc.err)
			assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).WithStatus(tc.status).Assert())
			if tc.metric != "" {
				assert.True(t, metrics.HasCounterRecordForMetric(tc.metric).Assert())
			}
			assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameQueryHandle).
				WithStatus(tc.status).WithEndAttributeKey(shell.LogAttrError).Assert())
			assert.True(t, logSpy.HasErrorLogWithMessage(shell.LogMsgQueryFailed).WithAttribute(shell.LogAttrError).Assert())
		})
	}
}

func Test_QueryWrapper_WithoutObservability(t *testing.T) {
	wrapper, err := observable.NewQueryWrapper[stubQuery, stubResult](stubHandler{result: stubResult{count: 1}})
	require.NoError(t, err)

	result, err := wrapper.Handle(context.Background(), stubQuery{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.ResultCount())
}
