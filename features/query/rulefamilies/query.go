package rulefamilies

import "github.com/heliosip/countryrules/shared/core"

const (
	queryType = "RuleFamilies"
)

// Query represents the input for searching rule families.
type Query struct {
	Criteria core.SearchCriteria
}

// BuildQuery creates a new Query from the search criteria.
func BuildQuery(criteria core.SearchCriteria) Query {
	return Query{Criteria: criteria}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
