package filteroptions

import (
	"context"

	"github.com/heliosip/countryrules/rulestore"
)

// RuleStore defines what the QueryHandler reads from the rule database.
type RuleStore interface {
	LoadSnapshot(ctx context.Context) (rulestore.Snapshot, error)
	Jurisdictions(ctx context.Context) ([]rulestore.Jurisdiction, error)
	MatterTypes(ctx context.Context) ([]rulestore.MatterType, error)
	JurisdictionIDsByName(ctx context.Context, name string) ([]int64, error)
	MatterTypeIDsByName(ctx context.Context, name string) ([]int64, error)
}

// QueryHandler orchestrates the filter options workflow: Load -> Look up -> Project.
type QueryHandler struct {
	ruleStore RuleStore
}

// NewQueryHandler creates a new QueryHandler with the provided RuleStore dependency.
func NewQueryHandler(ruleStore RuleStore) QueryHandler {
	return QueryHandler{
		ruleStore: ruleStore,
	}
}

// Handle executes the filter options workflow.
func (h QueryHandler) Handle(ctx context.Context, query Query) (FilterOptions, error) {
	jurisdictions, err := h.ruleStore.Jurisdictions(ctx)
	if err != nil {
		return FilterOptions{}, err
	}

	matterTypes, err := h.ruleStore.MatterTypes(ctx)
	if err != nil {
		return FilterOptions{}, err
	}

	snapshot, err := h.ruleStore.LoadSnapshot(ctx)
	if err != nil {
		return FilterOptions{}, err
	}

	var narrowing Narrowing
	criteria := query.criteria()

	if criteria.FiltersJurisdiction() {
		if narrowing.JurisdictionIDs, err = h.ruleStore.JurisdictionIDsByName(ctx, query.Jurisdiction); err != nil {
			return FilterOptions{}, err
		}
		narrowing.JurisdictionIDs = nonNil(narrowing.JurisdictionIDs)
	}

	if criteria.FiltersMatterType() {
		if narrowing.MatterTypeIDs, err = h.ruleStore.MatterTypeIDsByName(ctx, query.MatterType); err != nil {
			return FilterOptions{}, err
		}
		narrowing.MatterTypeIDs = nonNil(narrowing.MatterTypeIDs)
	}

	return Project(snapshot, jurisdictions, matterTypes, narrowing), nil
}

// nonNil turns "no matching master row" into an empty restriction that matches no rule.
func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}

	return ids
}
