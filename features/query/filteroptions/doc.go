// Package filteroptions implements the filter options use case: the choices a presentation layer
// offers for a search.
//
// It returns the jurisdictions (United States, European Patent Office and WIPO first), the matter
// types, the active rules as "[ID] Activity" display names and their distinct outcome labels.
// Rules and outcomes can be narrowed to a jurisdiction and a matter type, which are looked up by
// name with bound statement parameters.
package filteroptions
