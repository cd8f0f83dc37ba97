package sqlengine

import (
	"github.com/heliosip/countryrules/rulestore"
)

// Option defines a functional option for configuring RuleStore.
type Option func(*RuleStore) error

// TableNames holds the names of the five tables the engine reads.
type TableNames struct {
	Rules         string
	Outcomes      string
	Conditions    string
	Jurisdictions string
	MatterTypes   string
}

// DefaultTableNames returns the table names of the production rule database.
func DefaultTableNames() TableNames {
	return TableNames{
		Rules:         defaultRulesTable,
		Outcomes:      defaultOutcomesTable,
		Conditions:    defaultConditionsTable,
		Jurisdictions: defaultJurisdictionsTable,
		MatterTypes:   defaultMatterTypesTable,
	}
}

// WithTableNames overrides the table names. All five names must be non-empty.
func WithTableNames(names TableNames) Option {
	return func(rs *RuleStore) error {
		for _, name := range []string{names.Rules, names.Outcomes, names.Conditions, names.Jurisdictions, names.MatterTypes} {
			if name == "" {
				return rulestore.ErrEmptyTableNameSupplied
			}
		}

		rs.tables = names

		return nil
	}
}

// WithDialect selects the SQL dialect statements are built for: DialectPostgres (default) or DialectSQLite.
func WithDialect(name string) Option {
	return func(rs *RuleStore) error {
		switch name {
		case DialectPostgres, DialectSQLite:
			rs.dialectName = name
			return nil

		default:
			return rulestore.ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the RuleStore.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts and durations of completed operations (production-safe)
// Warn level: non-critical issues like failing to close a result set
// Error level: failures that abort the current request.
func WithLogger(logger rulestore.Logger) Option {
	return func(rs *RuleStore) error {
		rs.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which receives the same messages as the Logger
// with trace correlation when tracing is enabled.
func WithContextualLogger(logger rulestore.ContextualLogger) Option {
	return func(rs *RuleStore) error {
		rs.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the RuleStore.
// It receives query durations, call counts, loaded row counts and database errors.
func WithMetrics(collector rulestore.MetricsCollector) Option {
	return func(rs *RuleStore) error {
		rs.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the RuleStore.
func WithTracing(collector rulestore.TracingCollector) Option {
	return func(rs *RuleStore) error {
		rs.tracingCollector = collector
		return nil
	}
}
