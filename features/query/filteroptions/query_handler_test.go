package filteroptions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosip/countryrules/features/query/filteroptions"
	"github.com/heliosip/countryrules/rulestore"
	"github.com/heliosip/countryrules/shared/core"
	"github.com/heliosip/countryrules/testutil/helper"
)

func Test_QueryHandler_Handle_AllOptions(t *testing.T) {
	// arrange
	handler := givenQueryHandler(t)

	// act
	options, err := handler.Handle(context.Background(), filteroptions.BuildQuery("", ""))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"United States", "European Patent Office", "WIPO", "Austria", "Germany"}, options.Jurisdictions)
	assert.Equal(t, []string{"Design", "Patent", "Trademark"}, options.MatterTypes)
	assert.Equal(t, []string{
		"[100] File application",
		"[101] Request examination",
		"[102] Respond to office action",
		"[103] Renew trademark",
		"[105] Register design",
	}, options.Rules)
	assert.Equal(t, []string{"Examination Requested", "Filed", "Office Action Answered", "Renewed"}, options.Outcomes)
	assert.Equal(t, 5, options.ResultCount())
}

func Test_QueryHandler_Handle_Narrowed(t *testing.T) {
	testCases := []struct {
		name             string
		jurisdiction     string
		matterType       string
		expectedRules    []string
		expectedOutcomes []string
	}{
		{
			name:             "jurisdiction",
			jurisdiction:     "Austria",
			expectedRules:    []string{"[101] Request examination", "[105] Register design"},
			expectedOutcomes: []string{"Examination Requested"},
		},
		{
			name:             "jurisdiction and matter type",
			jurisdiction:     "Austria",
			matterType:       "Patent",
			expectedRules:    []string{"[101] Request examination"},
			expectedOutcomes: []string{"Examination Requested"},
		},
		{
			name:             "All does not narrow",
			jurisdiction:     "All",
			matterType:       "Trademark",
			expectedRules:    []string{"[103] Renew trademark"},
			expectedOutcomes: []string{"Renewed"},
		},
		{
			name:             "dirty jurisdiction matches nothing",
			jurisdiction:     "Atlantis",
			expectedRules:    []string{},
			expectedOutcomes: []string{},
		},
		{
			name:             "quoted name is a bound parameter",
			jurisdiction:     "Germany' OR '1'='1",
			expectedRules:    []string{},
			expectedOutcomes: []string{},
		},
	}

	handler := givenQueryHandler(t)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			options, err := handler.Handle(context.Background(), filteroptions.BuildQuery(tc.jurisdiction, tc.matterType))

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedRules, options.Rules)
			assert.Equal(t, tc.expectedOutcomes, options.Outcomes)
			assert.Len(t, options.Jurisdictions, 5, "jurisdictions are never narrowed")
		})
	}
}

func Test_QueryHandler_Handle_RuleOptionsRoundTrip(t *testing.T) {
	// arrange
	handler := givenQueryHandler(t)
	options, err := handler.Handle(context.Background(), filteroptions.BuildQuery("", "Design"))
	require.NoError(t, err)
	require.Len(t, options.Rules, 1)

	// act
	id, activity, ok := core.ParseRuleDisplayName(options.Rules[0])

	// assert
	require.True(t, ok)
	assert.Equal(t, int64(105), id)
	assert.Equal(t, "Register design", activity)
}

func Test_QueryHandler_Handle_DataAccessFailure(t *testing.T) {
	// arrange
	db := helper.GivenRuleDatabase(t)
	helper.ExecRuleDatabaseSQL(t, db, `DROP TABLE tblMatterTypeMaster;`)
	handler := filteroptions.NewQueryHandler(helper.GivenSQLiteRuleStore(t, db))

	// act
	_, err := handler.Handle(context.Background(), filteroptions.BuildQuery("", ""))

	// assert
	assert.ErrorIs(t, err, rulestore.ErrDataAccess)
}

func Test_Project_RequiresKnownMasterData(t *testing.T) {
	// arrange
	snapshot := rulestore.Snapshot{
		Rules: []rulestore.RuleDefinition{
			{ID: 1, Activity: "Known", Active: true, Jurisdiction: "10", MatterType: "1"},
			{ID: 2, Activity: "Unknown jurisdiction", Active: true, Jurisdiction: "77", MatterType: "1"},
			{ID: 3, Activity: "Inactive", Active: false, Jurisdiction: "10", MatterType: "1"},
			{ID: 4, Activity: "Malformed tokens", Active: true, Jurisdiction: "x, 10", MatterType: " 1 "},
		},
		Outcomes: []rulestore.OutcomeLink{{RuleID: 2, Label: "Hidden"}, {RuleID: 4, Label: "Shown"}},
	}
	jurisdictions := []rulestore.Jurisdiction{{ID: 10, Name: "Germany"}, {ID: 12, Name: "Germany"}}
	matterTypes := []rulestore.MatterType{{ID: 1, Name: "Patent"}}

	// act
	options := filteroptions.Project(snapshot, jurisdictions, matterTypes, filteroptions.Narrowing{})

	// assert
	assert.Equal(t, []string{"[1] Known", "[4] Malformed tokens"}, options.Rules)
	assert.Equal(t, []string{"Shown"}, options.Outcomes)
	assert.Equal(t, []string{"Germany"}, options.Jurisdictions)
}

func givenQueryHandler(t *testing.T) filteroptions.QueryHandler {
	t.Helper()

	return filteroptions.NewQueryHandler(helper.GivenSQLiteRuleStore(t, helper.GivenRuleDatabase(t)))
}
