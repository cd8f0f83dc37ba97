// Package family derives rule families from a rule database snapshot.
//
// A rule family is a chain of rules connected outcome→condition: rule A produces an outcome whose
// label equals a condition value consumed by rule B. Such a connection is only valid when A and B share
// at least one (jurisdiction, matter type) pair, so chains never cross jurisdiction or matter-type
// boundaries.
//
// Every active rule without an incoming valid connection is a root. Each root gets a sequential
// family reference (RF-00001, RF-00002, ... ordered by rule ID) and the chains reachable from it are
// expanded up to MaxLevel rules. The expansion is multi-path: a rule reachable through several parents
// appears once per chain path, possibly in several families. Cyclic connection graphs terminate because
// the level cap is enforced unconditionally.
//
// All functions in this package are pure and safe for concurrent use.
package family
