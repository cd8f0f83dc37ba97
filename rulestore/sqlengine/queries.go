package sqlengine

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration

	"github.com/heliosip/countryrules/rulestore"
	"github.com/heliosip/countryrules/rulestore/sqlengine/internal/adapters"
)

const (
	defaultRulesTable         = "tblRuleDefination"
	defaultOutcomesTable      = "tblOutcomes"
	defaultConditionsTable    = "tblConditions"
	defaultJurisdictionsTable = "tblCountryMaster"
	defaultMatterTypesTable   = "tblMatterTypeMaster"
)

const (
	colID             = "ID"
	colActivity       = "Activity"
	colActive         = "Active"
	colJurisdiction   = "Jurisdiction"
	colMatterType     = "MatterType"
	colDueDate        = "DueDate"
	colFinalDueDate   = "FinalDueDate"
	colRuleType       = "RuleType"
	colRule           = "Rule"
	colLabel          = "Label"
	colOutputType     = "OutputType"
	colValue          = "Value"
	colName           = "Name"
	colMatterTypeName = "MaterType"
	colDirtyFlag      = "isDirtyFlag"
)

// The Active and isDirtyFlag columns are read and evaluated after scanning: Postgres stores them as
// boolean, SQLite and the legacy schema as 0/1 integers, and a NULL dirty flag counts as clean.

func (rs RuleStore) selectRules() *goqu.SelectDataset {
	return rs.builder.
		From(rs.tables.Rules).
		Prepared(true).
		Select(colID, colActivity, colActive, colJurisdiction, colMatterType, colDueDate, colFinalDueDate, colRuleType).
		Order(goqu.C(colID).Asc())
}

func (rs RuleStore) selectOutcomes() *goqu.SelectDataset {
	return rs.builder.
		From(rs.tables.Outcomes).
		Prepared(true).
		Select(colRule, colLabel, colOutputType).
		Order(goqu.C(colRule).Asc(), goqu.C(colLabel).Asc())
}

func (rs RuleStore) selectConditions() *goqu.SelectDataset {
	return rs.builder.
		From(rs.tables.Conditions).
		Prepared(true).
		Select(colRule, colValue).
		Order(goqu.C(colRule).Asc(), goqu.C(colValue).Asc())
}

func (rs RuleStore) selectJurisdictions() *goqu.SelectDataset {
	return rs.builder.
		From(rs.tables.Jurisdictions).
		Prepared(true).
		Select(colID, colName, colDirtyFlag).
		Order(goqu.C(colName).Asc(), goqu.C(colID).Asc())
}

func (rs RuleStore) selectMatterTypes() *goqu.SelectDataset {
	return rs.builder.
		From(rs.tables.MatterTypes).
		Prepared(true).
		Select(goqu.C(colID), goqu.C(colMatterTypeName), goqu.C(colDirtyFlag)).
		Order(goqu.C(colMatterTypeName).Asc(), goqu.C(colID).Asc())
}

func (rs RuleStore) selectIDsByName(table, nameColumn, name string) *goqu.SelectDataset {
	return rs.builder.
		From(table).
		Prepared(true).
		Select(colID, colDirtyFlag).
		Where(goqu.C(nameColumn).Eq(name)).
		Order(goqu.C(colID).Asc())
}

func scanRule(rows adapters.DBRows) (rulestore.RuleDefinition, bool, error) {
	var (
		id                                 int64
		activity, jurisdiction, matterType sql.NullString
		dueDate, finalDueDate, ruleType    sql.NullString
		active                             sql.NullBool
	)

	if err := rows.Scan(&id, &activity, &active, &jurisdiction, &matterType, &dueDate, &finalDueDate, &ruleType); err != nil {
		return rulestore.RuleDefinition{}, false, err
	}

	rule := rulestore.RuleDefinition{
		ID:           id,
		Activity:     activity.String,
		Active:       active.Valid && active.Bool,
		Jurisdiction: jurisdiction.String,
		MatterType:   matterType.String,
		DueDate:      dueDate.String,
		FinalDueDate: finalDueDate.String,
		RuleType:     ruleType.String,
	}

	return rule, rule.Active, nil
}

// scanOutcome skips NULL labels, which never equal any condition value.
func scanOutcome(rows adapters.DBRows) (rulestore.OutcomeLink, bool, error) {
	var (
		ruleID            int64
		label, outputType sql.NullString
	)

	if err := rows.Scan(&ruleID, &label, &outputType); err != nil {
		return rulestore.OutcomeLink{}, false, err
	}

	return rulestore.OutcomeLink{RuleID: ruleID, Label: label.String, OutputType: outputType.String}, label.Valid, nil
}

func scanCondition(rows adapters.DBRows) (rulestore.ConditionLink, bool, error) {
	var (
		ruleID int64
		value  sql.NullString
	)

	if err := rows.Scan(&ruleID, &value); err != nil {
		return rulestore.ConditionLink{}, false, err
	}

	return rulestore.ConditionLink{RuleID: ruleID, Value: value.String}, value.Valid, nil
}

func scanJurisdiction(rows adapters.DBRows) (rulestore.Jurisdiction, bool, error) {
	var (
		id    int64
		name  sql.NullString
		dirty sql.NullBool
	)

	if err := rows.Scan(&id, &name, &dirty); err != nil {
		return rulestore.Jurisdiction{}, false, err
	}

	return rulestore.Jurisdiction{ID: id, Name: name.String}, isClean(dirty), nil
}

func scanMatterType(rows adapters.DBRows) (rulestore.MatterType, bool, error) {
	var (
		id    int64
		name  sql.NullString
		dirty sql.NullBool
	)

	if err := rows.Scan(&id, &name, &dirty); err != nil {
		return rulestore.MatterType{}, false, err
	}

	return rulestore.MatterType{ID: id, Name: name.String}, isClean(dirty), nil
}

func scanMasterID(rows adapters.DBRows) (int64, bool, error) {
	var (
		id    int64
		dirty sql.NullBool
	)

	if err := rows.Scan(&id, &dirty); err != nil {
		return 0, false, err
	}

	return id, isClean(dirty), nil
}

func isClean(dirty sql.NullBool) bool {
	return !dirty.Valid || !dirty.Bool
}
