package core

import (
	"slices"
	"strings"
	"time"

	"github.com/heliosip/countryrules/family"
	"github.com/heliosip/countryrules/rulestore"
)

const listSeparator = "; "

// ReportRow is one row of the rule hierarchy report: a rule reached through one chain path of a family.
type ReportRow struct {
	FamilyReference  string
	RuleID           int64
	ChainPath        string
	Level            int
	RuleType         rulestore.RuleType
	RuleName         string
	MatterType       string
	Jurisdictions    string
	TriggeredBy      string
	TriggerCondition string
	OutputType       string
	Outcome          string
	DueDate          string
	FinalDueDate     string
}

// CalculatedRow is a report row with its date formulas evaluated against a base date.
// A nil calculated date means the formula could not be evaluated.
type CalculatedRow struct {
	ReportRow
	BaseDate               time.Time
	CalculatedDueDate      *time.Time
	CalculatedFinalDueDate *time.Time
}

// BuildReportRows turns resolved families into report rows, one per family row and in the same order.
func BuildReportRows(snapshot rulestore.Snapshot, families []family.RuleFamily) []ReportRow {
	rules := snapshot.RuleByID()
	outputTypes := outputTypesByRule(snapshot.Outcomes)
	labels := labelSetsByRule(snapshot.Outcomes)
	conditions := conditionValuesByRule(snapshot.Conditions)

	rows := make([]ReportRow, 0, len(families))
	for _, f := range families {
		rule := rules[f.RuleID]

		row := ReportRow{
			FamilyReference: f.FamilyReference,
			RuleID:          f.RuleID,
			ChainPath:       f.ChainPathString(),
			Level:           f.Level,
			RuleType:        rule.RuleType,
			RuleName:        f.RuleName,
			MatterType:      f.MatterTypes,
			Jurisdictions:   f.Jurisdictions,
			OutputType:      strings.Join(outputTypes[f.RuleID], listSeparator),
			Outcome:         strings.Join(f.Outcomes, listSeparator),
			DueDate:         rule.DueDate,
			FinalDueDate:    rule.FinalDueDate,
		}

		if !f.IsRoot() {
			parent := rules[f.ParentRuleID]
			row.TriggeredBy = RuleDisplayName(parent.ID, parent.Activity)
			row.TriggerCondition = triggerCondition(conditions[f.RuleID], labels[f.ParentRuleID])
		}

		rows = append(rows, row)
	}

	return rows
}

// triggerCondition lists the condition values of a rule that are satisfied by one of its parent's outcome labels.
func triggerCondition(values []string, parentLabels map[string]struct{}) string {
	matched := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := parentLabels[v]; ok {
			matched = append(matched, v)
		}
	}

	return strings.Join(matched, listSeparator)
}

func outputTypesByRule(links []rulestore.OutcomeLink) map[int64][]string {
	types := make(map[int64][]string)
	for _, o := range links {
		if o.OutputType != "" {
			types[o.RuleID] = append(types[o.RuleID], o.OutputType)
		}
	}

	return sortedDistinct(types)
}

func labelSetsByRule(links []rulestore.OutcomeLink) map[int64]map[string]struct{} {
	sets := make(map[int64]map[string]struct{})
	for _, o := range links {
		if sets[o.RuleID] == nil {
			sets[o.RuleID] = make(map[string]struct{})
		}
		sets[o.RuleID][o.Label] = struct{}{}
	}

	return sets
}

func conditionValuesByRule(links []rulestore.ConditionLink) map[int64][]string {
	values := make(map[int64][]string)
	for _, c := range links {
		values[c.RuleID] = append(values[c.RuleID], c.Value)
	}

	return sortedDistinct(values)
}

func sortedDistinct(m map[int64][]string) map[int64][]string {
	for id, values := range m {
		slices.Sort(values)
		m[id] = slices.Compact(values)
	}

	return m
}
