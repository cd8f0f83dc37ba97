package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heliosip/countryrules/shared/core"
)

type criteriaFlags struct {
	cmd *cobra.Command

	jurisdiction string
	matterType   string
	rule         string
	ruleID       int64
	outcome      string
}

func (f *criteriaFlags) bind(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().StringVarP(&f.jurisdiction, "jurisdiction", "j", core.AllJurisdictions, "Jurisdiction filter (substring, case-insensitive)")
	cmd.Flags().StringVarP(&f.matterType, "matter-type", "m", "", "Matter type filter (substring, case-insensitive)")
	cmd.Flags().StringVarP(&f.rule, "rule", "r", "", `Select the family containing this rule, as "[ID] Activity", an ID or an activity name`)
	cmd.Flags().Int64Var(&f.ruleID, "rule-id", 0, "Select the family containing the rule with this ID")
	cmd.Flags().StringVarP(&f.outcome, "outcome", "o", "", "Select families containing a rule with this outcome label")
}

// criteria turns the flags into search criteria. --rule accepts a display name as printed by
// the options command, a bare ID or a rule name.
func (f *criteriaFlags) criteria() (core.SearchCriteria, error) {
	criteria := core.SearchCriteria{
		Jurisdiction: f.jurisdiction,
		MatterType:   f.matterType,
		Outcome:      f.outcome,
		RuleID:       f.ruleID,
	}

	ruleIDSet := f.cmd != nil && f.cmd.Flags().Changed("rule-id")

	if ruleIDSet && criteria.RuleID <= 0 {
		return core.SearchCriteria{}, fmt.Errorf("invalid --rule-id %d: rule IDs are positive", criteria.RuleID)
	}

	rule := strings.TrimSpace(f.rule)
	if rule == "" {
		return criteria, nil
	}

	if ruleIDSet {
		return core.SearchCriteria{}, errors.New("--rule and --rule-id are mutually exclusive")
	}

	id, _, ok := core.ParseRuleDisplayName(rule)
	if !ok {
		parsed, err := strconv.ParseInt(rule, 10, 64)
		if err != nil {
			criteria.RuleName = rule
			return criteria, nil
		}
		id = parsed
	}

	if id <= 0 {
		return core.SearchCriteria{}, fmt.Errorf("invalid --rule %q: rule IDs are positive", rule)
	}

	criteria.RuleID = id

	return criteria, nil
}
