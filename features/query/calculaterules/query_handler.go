package calculaterules

import (
	"context"

	"github.com/heliosip/countryrules/features/query/rulefamilies"
	"github.com/heliosip/countryrules/shared/shell"
)

// QueryHandler runs the rule family search and evaluates the date formulas of its rows.
type QueryHandler struct {
	search shell.QueryHandler[rulefamilies.Query, rulefamilies.RuleFamilies]
}

// NewQueryHandler creates a new QueryHandler on top of a rule family search handler,
// which may itself be wrapped with observability.
func NewQueryHandler(search shell.QueryHandler[rulefamilies.Query, rulefamilies.RuleFamilies]) QueryHandler {
	return QueryHandler{
		search: search,
	}
}

// Handle executes the workflow: Search -> Calculate.
func (h QueryHandler) Handle(ctx context.Context, query Query) (CalculatedRules, error) {
	found, err := h.search.Handle(ctx, rulefamilies.BuildQuery(query.Criteria))
	if err != nil {
		return CalculatedRules{}, err
	}

	return Project(found, query), nil
}
