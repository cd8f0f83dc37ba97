package shell

import (
	"context"

	"github.com/heliosip/countryrules/rulestore"
)

// LoadsRuleSnapshots is what query handlers need from the rule database.
// sqlengine.RuleStore satisfies it.
type LoadsRuleSnapshots interface {
	LoadSnapshot(ctx context.Context) (rulestore.Snapshot, error)
}

// Query represents the contract for all query types.
// QueryType names the query for logs, metrics and spans.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query results.
// ResultCount is the number of rows a result holds; zero is the "no results found" state, not an error.
type QueryResult interface {
	ResultCount() int
}

// QueryHandler defines the contract for components that process queries and return results.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
