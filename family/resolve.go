package family

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/heliosip/countryrules/rulestore"
)

const (
	// MaxLevel is the deepest level a chain can reach; the root is level 1.
	MaxLevel = 5

	familyReferenceFormat = "RF-%05d"
	chainPathSeparator    = " -> "
	nameSeparator         = ", "
)

// DefaultMatterTypeNames maps matter-type IDs to display names. Unknown IDs are displayed as-is.
var DefaultMatterTypeNames = map[string]string{
	"1": "Patent",
	"2": "Trademark",
	"3": "Design",
	"4": "Utility Model",
	"5": "Domain Name",
	"6": "Unitary Patent",
}

// Input is everything the resolver needs. MatterTypeNames may be nil, in which case DefaultMatterTypeNames is used.
type Input struct {
	Rules             []rulestore.RuleDefinition
	Outcomes          []rulestore.OutcomeLink
	Conditions        []rulestore.ConditionLink
	JurisdictionNames map[string]string
	MatterTypeNames   map[string]string
}

// InputFrom builds the resolver input from a rule database snapshot.
func InputFrom(snapshot rulestore.Snapshot) Input {
	return Input{
		Rules:             snapshot.Rules,
		Outcomes:          snapshot.Outcomes,
		Conditions:        snapshot.Conditions,
		JurisdictionNames: snapshot.JurisdictionNames(),
		MatterTypeNames:   snapshot.MatterTypeNames(),
	}
}

// RuleFamily is one (rule, chain path) pair reachable from a root.
type RuleFamily struct {
	FamilyReference string
	RuleID          int64
	RuleName        string
	RootRuleID      int64
	ParentRuleID    int64 // 0 for the root
	Level           int
	ChainPath       []int64
	Jurisdictions   string
	MatterTypes     string
	Outcomes        []string
}

// ChainPathString renders the chain path as an arrow-joined trace, e.g. "12 -> 40 -> 41".
func (f RuleFamily) ChainPathString() string {
	parts := make([]string, len(f.ChainPath))
	for i, id := range f.ChainPath {
		parts[i] = strconv.FormatInt(id, 10)
	}

	return strings.Join(parts, chainPathSeparator)
}

// Contains reports whether ruleID appears anywhere in the chain path.
func (f RuleFamily) Contains(ruleID int64) bool {
	return slices.Contains(f.ChainPath, ruleID)
}

// IsRoot reports whether the row is the root of its family.
func (f RuleFamily) IsRoot() bool {
	return f.Level == 1
}

type displayNames struct {
	jurisdictions string
	matterTypes   string
}

type frame struct {
	ruleID   int64
	parentID int64
	level    int
	path     []int64
}

// Resolve computes all rule families of the input.
//
// The result is ordered by family reference, level and chain path, so resolving an unchanged input
// always yields identical references and paths.
func Resolve(in Input) []RuleFamily {
	rules := activeRulesByID(in.Rules)
	connections := ValidConnections(in)

	children := make(map[int64][]int64)
	hasParent := make(map[int64]bool)
	for _, c := range connections {
		children[c.ParentRuleID] = append(children[c.ParentRuleID], c.ChildRuleID)
		hasParent[c.ChildRuleID] = true
	}

	roots := make([]int64, 0)
	for id := range rules {
		if !hasParent[id] {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)

	names := make(map[int64]displayNames, len(rules))
	outcomes := outcomeLabelsByRule(in.Outcomes)
	families := make([]RuleFamily, 0, len(roots))

	for i, rootID := range roots {
		reference := fmt.Sprintf(familyReferenceFormat, i+1)
		stack := []frame{{ruleID: rootID, level: 1, path: []int64{rootID}}}

		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n, ok := names[current.ruleID]
			if !ok {
				n = resolveNames(rules[current.ruleID], in)
				names[current.ruleID] = n
			}

			families = append(families, RuleFamily{
				FamilyReference: reference,
				RuleID:          current.ruleID,
				RuleName:        rules[current.ruleID].Activity,
				RootRuleID:      rootID,
				ParentRuleID:    current.parentID,
				Level:           current.level,
				ChainPath:       current.path,
				Jurisdictions:   n.jurisdictions,
				MatterTypes:     n.matterTypes,
				Outcomes:        slices.Clone(outcomes[current.ruleID]),
			})

			if current.level >= MaxLevel {
				continue
			}

			for _, childID := range children[current.ruleID] {
				path := make([]int64, len(current.path), len(current.path)+1)
				copy(path, current.path)

				stack = append(stack, frame{
					ruleID:   childID,
					parentID: current.ruleID,
					level:    current.level + 1,
					path:     append(path, childID),
				})
			}
		}
	}

	slices.SortFunc(families, func(a, b RuleFamily) int {
		return cmp.Or(
			strings.Compare(a.FamilyReference, b.FamilyReference),
			cmp.Compare(a.Level, b.Level),
			slices.Compare(a.ChainPath, b.ChainPath),
		)
	})

	return families
}

func activeRulesByID(rules []rulestore.RuleDefinition) map[int64]rulestore.RuleDefinition {
	active := make(map[int64]rulestore.RuleDefinition, len(rules))
	for _, r := range rules {
		if r.Active {
			active[r.ID] = r
		}
	}

	return active
}

// outcomeLabelsByRule collects the distinct outcome labels of every rule, sorted.
func outcomeLabelsByRule(links []rulestore.OutcomeLink) map[int64][]string {
	labels := make(map[int64][]string)
	for _, o := range links {
		labels[o.RuleID] = append(labels[o.RuleID], o.Label)
	}

	for id, l := range labels {
		slices.Sort(l)
		labels[id] = slices.Compact(l)
	}

	return labels
}

// resolveNames turns the attribute pairs of a rule into display strings.
// Jurisdictions missing from the lookup are dropped; unknown matter types fall back to their raw ID.
func resolveNames(rule rulestore.RuleDefinition, in Input) displayNames {
	matterTypeNames := in.MatterTypeNames
	if matterTypeNames == nil {
		matterTypeNames = DefaultMatterTypeNames
	}

	jurisdictions := make([]string, 0)
	matterTypes := make([]string, 0)

	for _, p := range AttributePairs(rule) {
		if name, ok := in.JurisdictionNames[p.JurisdictionID]; ok {
			jurisdictions = append(jurisdictions, name)
		}

		if name, ok := matterTypeNames[p.MatterTypeID]; ok {
			matterTypes = append(matterTypes, name)
		} else {
			matterTypes = append(matterTypes, p.MatterTypeID)
		}
	}

	return displayNames{
		jurisdictions: joinDistinct(jurisdictions),
		matterTypes:   joinDistinct(matterTypes),
	}
}

func joinDistinct(values []string) string {
	slices.Sort(values)

	return strings.Join(slices.Compact(values), nameSeparator)
}
