package family_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosip/countryrules/family"
	"github.com/heliosip/countryrules/rulestore"
)

func Test_SplitIDs(t *testing.T) {
	testCases := []struct {
		name     string
		list     string
		expected []string
	}{
		{name: "empty list", list: "", expected: []string{}},
		{name: "single id", list: "7", expected: []string{"7"}},
		{name: "trims and sorts numerically", list: " 12, 3 ,7", expected: []string{"3", "7", "12"}},
		{name: "drops duplicates and empty tokens", list: "3,,3, ", expected: []string{"3"}},
		{name: "drops malformed tokens only", list: "4,x1,5a,6", expected: []string{"4", "6"}},
		{name: "canonicalizes leading zeros", list: "01,1", expected: []string{"1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, family.SplitIDs(tc.list))
		})
	}
}

func Test_AttributePairs_CrossProduct(t *testing.T) {
	// arrange
	rule := givenRule(1, "10, 20", "1,2")

	// act
	pairs := family.AttributePairs(rule)

	// assert
	assert.Equal(t, []family.AttributePair{
		{JurisdictionID: "10", MatterTypeID: "1"},
		{JurisdictionID: "10", MatterTypeID: "2"},
		{JurisdictionID: "20", MatterTypeID: "1"},
		{JurisdictionID: "20", MatterTypeID: "2"},
	}, pairs)
}

func Test_AttributePairs_NoPairsWithoutMatterType(t *testing.T) {
	assert.Empty(t, family.AttributePairs(givenRule(1, "10", "")))
}

func Test_ValidConnections_RequiresLabelMatchAndSharedPair(t *testing.T) {
	testCases := []struct {
		name     string
		parent   rulestore.RuleDefinition
		child    rulestore.RuleDefinition
		label    string
		value    string
		expected []family.Connection
	}{
		{
			name:     "matching label and shared pair",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "10,11", "1"),
			label:    "Filed",
			value:    "Filed",
			expected: []family.Connection{{ParentRuleID: 1, ChildRuleID: 2}},
		},
		{
			name:     "matching label but disjoint jurisdictions",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "11", "1"),
			label:    "Filed",
			value:    "Filed",
			expected: []family.Connection{},
		},
		{
			name:     "matching label but disjoint matter types",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "10", "2"),
			label:    "Filed",
			value:    "Filed",
			expected: []family.Connection{},
		},
		{
			name:     "jurisdiction and matter type shared only across different pairs",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "10,11", "2"),
			label:    "Filed",
			value:    "Filed",
			expected: []family.Connection{},
		},
		{
			name:     "shared pair but label differs",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "10", "1"),
			label:    "Filed",
			value:    "Granted",
			expected: []family.Connection{},
		},
		{
			name:     "label match is case-sensitive",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "10", "1"),
			label:    "Filed",
			value:    "filed",
			expected: []family.Connection{},
		},
		{
			name:     "child without attributes matches nothing",
			parent:   givenRule(1, "10", "1"),
			child:    givenRule(2, "", ""),
			label:    "Filed",
			value:    "Filed",
			expected: []family.Connection{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			in := family.Input{
				Rules:      []rulestore.RuleDefinition{tc.parent, tc.child},
				Outcomes:   []rulestore.OutcomeLink{{RuleID: tc.parent.ID, Label: tc.label}},
				Conditions: []rulestore.ConditionLink{{RuleID: tc.child.ID, Value: tc.value}},
			}

			// act
			connections := family.ValidConnections(in)

			// assert
			assert.Equal(t, tc.expected, connections)
		})
	}
}

func Test_ValidConnections_IgnoresInactiveRulesAndDuplicates(t *testing.T) {
	// arrange
	inactive := givenRule(3, "10", "1")
	inactive.Active = false

	in := family.Input{
		Rules: []rulestore.RuleDefinition{givenRule(1, "10", "1"), givenRule(2, "10", "1"), inactive},
		Outcomes: []rulestore.OutcomeLink{
			{RuleID: 1, Label: "Filed"},
			{RuleID: 1, Label: "Filed"},
		},
		Conditions: []rulestore.ConditionLink{
			{RuleID: 2, Value: "Filed"},
			{RuleID: 3, Value: "Filed"},
		},
	}

	// act
	connections := family.ValidConnections(in)

	// assert
	assert.Equal(t, []family.Connection{{ParentRuleID: 1, ChildRuleID: 2}}, connections)
}

func Test_Resolve_LinearChain(t *testing.T) {
	// arrange
	in := givenChain(t, 3)

	// act
	families := family.Resolve(in)

	// assert
	require.Len(t, families, 3)
	assert.Equal(t, "RF-00001", families[0].FamilyReference)
	assert.Equal(t, "1", families[0].ChainPathString())
	assert.Equal(t, "1 -> 2", families[1].ChainPathString())
	assert.Equal(t, "1 -> 2 -> 3", families[2].ChainPathString())
	assert.Equal(t, []int{1, 2, 3}, []int{families[0].Level, families[1].Level, families[2].Level})
	assert.Equal(t, int64(0), families[0].ParentRuleID)
	assert.Equal(t, int64(2), families[2].ParentRuleID)
	assert.True(t, families[0].IsRoot())

	for _, f := range families {
		assert.Equal(t, int64(1), f.RootRuleID)
		assert.Equal(t, "Germany", f.Jurisdictions)
		assert.Equal(t, "Patent", f.MatterTypes)
	}
}

func Test_Resolve_DepthIsCappedAtMaxLevel(t *testing.T) {
	// arrange
	in := givenChain(t, 8)

	// act
	families := family.Resolve(in)

	// assert
	require.Len(t, families, family.MaxLevel)
	for _, f := range families {
		assert.LessOrEqual(t, f.Level, family.MaxLevel)
		assert.LessOrEqual(t, len(f.ChainPath), family.MaxLevel)
	}
	assert.Equal(t, "1 -> 2 -> 3 -> 4 -> 5", families[len(families)-1].ChainPathString())
}

func Test_Resolve_CycleTerminates(t *testing.T) {
	// arrange: 1 -> 2 -> 3 -> 2
	in := family.Input{
		Rules: []rulestore.RuleDefinition{
			givenRule(1, "10", "1"),
			givenRule(2, "10", "1"),
			givenRule(3, "10", "1"),
		},
		Outcomes: []rulestore.OutcomeLink{
			{RuleID: 1, Label: "a"},
			{RuleID: 2, Label: "b"},
			{RuleID: 3, Label: "c"},
		},
		Conditions: []rulestore.ConditionLink{
			{RuleID: 2, Value: "a"},
			{RuleID: 3, Value: "b"},
			{RuleID: 2, Value: "c"},
		},
	}

	// act
	families := family.Resolve(in)

	// assert
	require.Len(t, families, family.MaxLevel)
	assert.Equal(t, "1 -> 2 -> 3 -> 2 -> 3", families[len(families)-1].ChainPathString())
}

func Test_Resolve_PureCycleHasNoRoot(t *testing.T) {
	// arrange: 1 <-> 2
	in := family.Input{
		Rules:      []rulestore.RuleDefinition{givenRule(1, "10", "1"), givenRule(2, "10", "1")},
		Outcomes:   []rulestore.OutcomeLink{{RuleID: 1, Label: "a"}, {RuleID: 2, Label: "b"}},
		Conditions: []rulestore.ConditionLink{{RuleID: 2, Value: "a"}, {RuleID: 1, Value: "b"}},
	}

	// act
	families := family.Resolve(in)

	// assert
	assert.Empty(t, families)
}

func Test_Resolve_RootsGetUniqueSequentialReferences(t *testing.T) {
	// arrange: roots 5, 9 and 30; 40 is triggered by 9
	in := family.Input{
		Rules: []rulestore.RuleDefinition{
			givenRule(30, "10", "1"),
			givenRule(5, "10", "1"),
			givenRule(9, "10", "1"),
			givenRule(40, "10", "1"),
		},
		Outcomes:   []rulestore.OutcomeLink{{RuleID: 9, Label: "x"}},
		Conditions: []rulestore.ConditionLink{{RuleID: 40, Value: "x"}},
	}

	// act
	families := family.Resolve(in)

	// assert
	rootReferences := make(map[int64]string)
	for _, f := range families {
		if f.IsRoot() {
			_, dup := rootReferences[f.RuleID]
			assert.False(t, dup, "a root must own exactly one family reference")
			rootReferences[f.RuleID] = f.FamilyReference
		}
	}

	assert.Equal(t, map[int64]string{5: "RF-00001", 9: "RF-00002", 30: "RF-00003"}, rootReferences)
}

func Test_Resolve_MultiPathExpansion(t *testing.T) {
	// arrange: diamond 1 -> {2, 3} -> 4
	in := family.Input{
		Rules: []rulestore.RuleDefinition{
			givenRule(1, "10", "1"),
			givenRule(2, "10", "1"),
			givenRule(3, "10", "1"),
			givenRule(4, "10", "1"),
		},
		Outcomes: []rulestore.OutcomeLink{
			{RuleID: 1, Label: "start"},
			{RuleID: 2, Label: "left"},
			{RuleID: 3, Label: "right"},
		},
		Conditions: []rulestore.ConditionLink{
			{RuleID: 2, Value: "start"},
			{RuleID: 3, Value: "start"},
			{RuleID: 4, Value: "left"},
			{RuleID: 4, Value: "right"},
		},
	}

	// act
	families := family.Resolve(in)

	// assert
	paths := make([]string, 0, len(families))
	for _, f := range families {
		paths = append(paths, f.ChainPathString())
	}

	assert.Equal(t, []string{"1", "1 -> 2", "1 -> 3", "1 -> 2 -> 4", "1 -> 3 -> 4"}, paths)
}

func Test_Resolve_IsIdempotent(t *testing.T) {
	// arrange
	in := givenChain(t, 4)
	in.Rules = append(in.Rules, givenRule(100, "10", "1"), givenRule(50, "11", "2"))

	// act
	first := family.Resolve(in)
	second := family.Resolve(in)

	// assert
	assert.Equal(t, first, second)
}

func Test_Resolve_ResolvesDisplayNames(t *testing.T) {
	// arrange
	in := family.Input{
		Rules: []rulestore.RuleDefinition{givenRule(1, "20,10,99,x", "2,1,9")},
		JurisdictionNames: map[string]string{
			"10": "Germany",
			"20": "Austria",
		},
	}

	// act
	families := family.Resolve(in)

	// assert
	require.Len(t, families, 1)
	assert.Equal(t, "Austria, Germany", families[0].Jurisdictions)
	assert.Equal(t, "9, Patent, Trademark", families[0].MatterTypes)
}

func Test_Resolve_UsesMatterTypeNamesFromInput(t *testing.T) {
	in := family.Input{
		Rules:           []rulestore.RuleDefinition{givenRule(1, "10", "1")},
		MatterTypeNames: map[string]string{"1": "Invention"},
	}

	families := family.Resolve(in)

	require.Len(t, families, 1)
	assert.Equal(t, "Invention", families[0].MatterTypes)
}

func Test_Resolve_CarriesOutcomes(t *testing.T) {
	in := family.Input{
		Rules: []rulestore.RuleDefinition{givenRule(1, "10", "1")},
		Outcomes: []rulestore.OutcomeLink{
			{RuleID: 1, Label: "Granted"},
			{RuleID: 1, Label: "Filed"},
			{RuleID: 1, Label: "Filed"},
		},
	}

	families := family.Resolve(in)

	require.Len(t, families, 1)
	assert.Equal(t, []string{"Filed", "Granted"}, families[0].Outcomes)
}

func Test_Resolve_RowsDoNotShareOutcomes(t *testing.T) {
	// arrange: rule 3 is reached on two paths, 1 -> 3 and 2 -> 3
	in := family.Input{
		Rules: []rulestore.RuleDefinition{
			givenRule(1, "10", "1"),
			givenRule(2, "10", "1"),
			givenRule(3, "10", "1"),
		},
		Outcomes: []rulestore.OutcomeLink{
			{RuleID: 1, Label: "start"},
			{RuleID: 2, Label: "start"},
			{RuleID: 3, Label: "Granted"},
		},
		Conditions: []rulestore.ConditionLink{
			{RuleID: 3, Value: "start"},
		},
	}

	families := family.Resolve(in)

	var rows []int
	for i, f := range families {
		if f.RuleID == 3 {
			rows = append(rows, i)
		}
	}
	require.Len(t, rows, 2)

	// act
	families[rows[0]].Outcomes[0] = "changed"

	// assert
	assert.Equal(t, []string{"Granted"}, families[rows[1]].Outcomes)
	assert.Equal(t, []string{"Granted"}, family.Resolve(in)[rows[0]].Outcomes)
}

func Test_InputFrom_Snapshot(t *testing.T) {
	snapshot := rulestore.Snapshot{
		Rules:         []rulestore.RuleDefinition{givenRule(1, "10", "1")},
		Jurisdictions: []rulestore.Jurisdiction{{ID: 10, Name: "Germany"}},
	}

	in := family.InputFrom(snapshot)

	assert.Equal(t, map[string]string{"10": "Germany"}, in.JurisdictionNames)
	assert.Nil(t, in.MatterTypeNames)
	assert.Len(t, in.Rules, 1)
}

func givenRule(id int64, jurisdiction, matterType string) rulestore.RuleDefinition {
	return rulestore.RuleDefinition{
		ID:           id,
		Activity:     "Rule " + string(rune('A'+id%26)),
		Active:       true,
		Jurisdiction: jurisdiction,
		MatterType:   matterType,
		RuleType:     rulestore.RuleTypeAction,
	}
}

// givenChain builds rules 1..n where rule i triggers rule i+1.
func givenChain(t *testing.T, n int64) family.Input {
	t.Helper()

	in := family.Input{JurisdictionNames: map[string]string{"10": "Germany"}}
	for id := int64(1); id <= n; id++ {
		in.Rules = append(in.Rules, givenRule(id, "10", "1"))
		label := "done-" + string(rune('a'+id))
		in.Outcomes = append(in.Outcomes, rulestore.OutcomeLink{RuleID: id, Label: label})
		if id < n {
			in.Conditions = append(in.Conditions, rulestore.ConditionLink{RuleID: id + 1, Value: label})
		}
	}

	return in
}
