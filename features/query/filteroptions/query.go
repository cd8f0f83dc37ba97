package filteroptions

import "github.com/heliosip/countryrules/shared/core"

const (
	queryType = "FilterOptions"
)

// Query represents the input for the filter options. Empty names do not narrow the options;
// the jurisdiction "All" does not either.
type Query struct {
	Jurisdiction string
	MatterType   string
}

// BuildQuery creates a new Query.
func BuildQuery(jurisdiction, matterType string) Query {
	return Query{
		Jurisdiction: jurisdiction,
		MatterType:   matterType,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

func (q Query) criteria() core.SearchCriteria {
	return core.SearchCriteria{Jurisdiction: q.Jurisdiction, MatterType: q.MatterType}
}
