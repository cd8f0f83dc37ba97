// Package observable provides a wrapper that instruments any query handler with metrics,
// tracing and logging while the wrapped handler stays free of observability code.
//
// Wrappers are applied at wiring time:
//
//	coreHandler := rulefamilies.NewQueryHandler(ruleStore)
//
//	handler, err := observable.NewQueryWrapper(
//		coreHandler,
//		observable.WithQueryMetrics[rulefamilies.Query, rulefamilies.RuleFamilies](metricsCollector),
//		observable.WithQueryTracing[rulefamilies.Query, rulefamilies.RuleFamilies](tracingCollector),
//	)
//
//	result, err := handler.Handle(ctx, query)
package observable
