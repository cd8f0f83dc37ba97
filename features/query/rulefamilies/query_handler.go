package rulefamilies

import (
	"context"
	"time"

	"github.com/heliosip/countryrules/family"
	"github.com/heliosip/countryrules/shared/core"
	"github.com/heliosip/countryrules/shared/shell"
)

// QueryHandler orchestrates the search workflow: Load -> Resolve -> Project.
// It handles rule database access and delegates the search logic to pure functions.
type QueryHandler struct {
	ruleStore        shell.LoadsRuleSnapshots
	metricsCollector shell.MetricsCollector
}

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler) error

// WithComponentMetrics records the duration of each phase of the workflow.
func WithComponentMetrics(collector shell.MetricsCollector) Option {
	return func(h *QueryHandler) error {
		h.metricsCollector = collector
		return nil
	}
}

// NewQueryHandler creates a new QueryHandler reading from the given rule store.
func NewQueryHandler(ruleStore shell.LoadsRuleSnapshots, opts ...Option) (QueryHandler, error) {
	h := QueryHandler{
		ruleStore: ruleStore,
	}

	for _, opt := range opts {
		if err := opt(&h); err != nil {
			return QueryHandler{}, err
		}
	}

	return h, nil
}

// Handle executes the search. Data access failures are returned as errors; an empty result is not an error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (RuleFamilies, error) {
	// Load phase
	loadStart := time.Now()
	snapshot, err := h.ruleStore.LoadSnapshot(ctx)
	h.recordComponentTiming(ctx, shell.ComponentLoadSnapshot, shell.StatusFor(err), time.Since(loadStart))
	if err != nil {
		return RuleFamilies{}, err
	}

	// Resolve phase
	resolveStart := time.Now()
	families := family.Resolve(family.InputFrom(snapshot))
	rows := core.BuildReportRows(snapshot, families)
	h.recordComponentTiming(ctx, shell.ComponentResolve, shell.StatusSuccess, time.Since(resolveStart))

	// Projection phase
	projectStart := time.Now()
	result := Project(families, rows, query)
	h.recordComponentTiming(ctx, shell.ComponentProject, shell.StatusSuccess, time.Since(projectStart))

	return result, nil
}

func (h QueryHandler) recordComponentTiming(ctx context.Context, component, status string, duration time.Duration) {
	shell.RecordQueryComponentDuration(ctx, h.metricsCollector, queryType, component, status, duration)
}
