// Package shell holds the infrastructure side of the rule family analyzer's query features:
// the query contracts, the shared observability helpers and error classification.
//
// In Hexagonal Architecture terminology, this would be called the 'infrastructure' layer.
package shell
