package rulestore

import (
	"strconv"
)

// RuleType tags a rule definition as an Action or a Task.
type RuleType = string

const (
	// RuleTypeAction marks a rule that produces an action item.
	RuleTypeAction RuleType = "Action"

	// RuleTypeTask marks a rule that produces a task.
	RuleTypeTask RuleType = "Task"
)

// RuleDefinition is an atomic rule record as stored in the rule database.
// Jurisdiction and MatterType hold the raw comma-separated ID lists.
type RuleDefinition struct {
	ID           int64
	Activity     string
	Active       bool
	Jurisdiction string
	MatterType   string
	DueDate      string
	FinalDueDate string
	RuleType     RuleType
}

// OutcomeLink is an outcome produced by the rule RuleID.
type OutcomeLink struct {
	RuleID     int64
	Label      string
	OutputType string
}

// ConditionLink is a condition consumed by the rule RuleID. Value is matched against OutcomeLink.Label.
type ConditionLink struct {
	RuleID int64
	Value  string
}

// Jurisdiction is a row of the jurisdiction (country) master table.
type Jurisdiction struct {
	ID   int64
	Name string
}

// MatterType is a row of the matter-type master table.
type MatterType struct {
	ID   int64
	Name string
}

// Snapshot is the complete, immutable input of one request.
type Snapshot struct {
	Rules         []RuleDefinition
	Outcomes      []OutcomeLink
	Conditions    []ConditionLink
	Jurisdictions []Jurisdiction
	MatterTypes   []MatterType
}

// JurisdictionNames returns a lookup from the textual jurisdiction ID to its name.
func (s Snapshot) JurisdictionNames() map[string]string {
	names := make(map[string]string, len(s.Jurisdictions))
	for _, j := range s.Jurisdictions {
		names[strconv.FormatInt(j.ID, 10)] = j.Name
	}

	return names
}

// MatterTypeNames returns a lookup from the textual matter-type ID to its name.
// It returns nil when the snapshot carries no matter-type master data so that callers fall back to their defaults.
func (s Snapshot) MatterTypeNames() map[string]string {
	if len(s.MatterTypes) == 0 {
		return nil
	}

	names := make(map[string]string, len(s.MatterTypes))
	for _, m := range s.MatterTypes {
		names[strconv.FormatInt(m.ID, 10)] = m.Name
	}

	return names
}

// RuleByID indexes the snapshot's rules by ID.
func (s Snapshot) RuleByID() map[int64]RuleDefinition {
	rules := make(map[int64]RuleDefinition, len(s.Rules))
	for _, r := range s.Rules {
		rules[r.ID] = r
	}

	return rules
}
