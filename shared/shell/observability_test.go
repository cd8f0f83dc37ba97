package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heliosip/countryrules/shared/shell"
	"github.com/heliosip/countryrules/testutil/helper"
)

func Test_RecordQueryMetrics_UsesQueryLabels(t *testing.T) {
	// arrange
	metrics := helper.NewMetricsCollectorSpy()
	labels := shell.BuildQueryLabels("RuleFamilies", shell.StatusSuccess)

	// act
	shell.RecordQueryMetrics(context.Background(), metrics, "RuleFamilies", shell.StatusSuccess, shell.OutcomeEmpty, time.Millisecond)

	// assert
	for _, metric := range []string{shell.QueryHandlerCallsMetric, shell.QueryHandlerEmptyResultMetric} {
		matcher := metrics.HasCounterRecordForMetric(metric)
		for key, value := range labels {
			matcher = matcher.WithLabel(key, value)
		}

		assert.True(t, matcher.Assert(), metric)
	}

	assert.True(t, metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel(shell.LogAttrQueryType, "RuleFamilies").
		WithStatus(shell.StatusSuccess).
		Assert())
}

func Test_ToMilliseconds(t *testing.T) {
	assert.InDelta(t, 1.5, shell.ToMilliseconds(1500*time.Microsecond), 1e-9)
	assert.InDelta(t, 0.0, shell.ToMilliseconds(0), 1e-9)
	assert.InDelta(t, 2000.0, shell.ToMilliseconds(2*time.Second), 1e-9)
}
