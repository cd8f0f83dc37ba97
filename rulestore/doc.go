// Package rulestore provides the core abstractions for reading an IP rule-engine database.
//
// This package defines the records that are read from the rule database, the snapshot that
// bundles them for one request, the sentinel errors shared by all engine implementations and the
// dependency-free observability interfaces (logging, metrics, tracing).
//
// The rule database is never written to. Every request loads one Snapshot and all further
// computation (family resolution, filtering, date calculation) happens on that in-memory copy.
//
// Key types:
//   - RuleDefinition: an atomic rule with its comma-separated jurisdiction and matter-type IDs
//   - OutcomeLink: an outcome produced by a rule (edge source)
//   - ConditionLink: a condition consumed by a rule (edge target)
//   - Snapshot: all of the above plus the jurisdiction and matter-type master data
//
// Common usage pattern:
//
//	snapshot, err := store.LoadSnapshot(ctx)
//	if err != nil {
//		if errors.Is(err, rulestore.ErrDataAccess) {
//			// report to the user, abort this request
//		}
//	}
package rulestore
