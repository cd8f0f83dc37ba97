package filteroptions

// FilterOptions represents the query result.
type FilterOptions struct {
	Jurisdictions []string
	MatterTypes   []string
	Rules         []string
	Outcomes      []string
}

// ResultCount returns the number of rule options.
func (o FilterOptions) ResultCount() int {
	return len(o.Rules)
}
