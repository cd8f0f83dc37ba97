package config

import "github.com/heliosip/countryrules/rulestore/sqlengine"

// TableNames merges the configured table names into the rule store defaults.
func (t TableConfig) TableNames() sqlengine.TableNames {
	names := sqlengine.DefaultTableNames()

	for _, o := range []struct {
		value  string
		target *string
	}{
		{t.Rules, &names.Rules},
		{t.Outcomes, &names.Outcomes},
		{t.Conditions, &names.Conditions},
		{t.Jurisdictions, &names.Jurisdictions},
		{t.MatterTypes, &names.MatterTypes},
	} {
		if o.value != "" {
			*o.target = o.value
		}
	}

	return names
}
