package filteroptions

import (
	"slices"
	"strconv"

	"github.com/heliosip/countryrules/family"
	"github.com/heliosip/countryrules/rulestore"
	"github.com/heliosip/countryrules/shared/core"
)

// Narrowing restricts rule options to rules carrying one of the given IDs. A nil slice does not restrict.
type Narrowing struct {
	JurisdictionIDs []int64
	MatterTypeIDs   []int64
}

// Project builds the filter options. This is a pure function.
//
// A rule is offered when it is active and lists at least one known jurisdiction and one known
// matter type, restricted further by the narrowing IDs when they are set. Jurisdictions and
// matter types keep the order they are given in.
func Project(
	snapshot rulestore.Snapshot,
	jurisdictions []rulestore.Jurisdiction,
	matterTypes []rulestore.MatterType,
	narrowing Narrowing,
) FilterOptions {
	knownJurisdictions := idSet(jurisdictionIDs(jurisdictions))
	knownMatterTypes := idSet(matterTypeIDs(matterTypes))
	wantedJurisdictions := optionalIDSet(narrowing.JurisdictionIDs)
	wantedMatterTypes := optionalIDSet(narrowing.MatterTypeIDs)

	labels := make(map[int64][]string)
	for _, o := range snapshot.Outcomes {
		labels[o.RuleID] = append(labels[o.RuleID], o.Label)
	}

	rules := make([]string, 0)
	outcomes := make([]string, 0)
	for _, r := range snapshot.Rules {
		if !r.Active {
			continue
		}

		if !listsAny(r.Jurisdiction, knownJurisdictions, wantedJurisdictions) ||
			!listsAny(r.MatterType, knownMatterTypes, wantedMatterTypes) {
			continue
		}

		rules = append(rules, core.RuleDisplayName(r.ID, r.Activity))
		outcomes = append(outcomes, labels[r.ID]...)
	}

	slices.Sort(rules)
	slices.Sort(outcomes)

	return FilterOptions{
		Jurisdictions: distinctNames(jurisdictionNames(jurisdictions)),
		MatterTypes:   distinctNames(matterTypeNames(matterTypes)),
		Rules:         slices.Compact(rules),
		Outcomes:      slices.Compact(outcomes),
	}
}

// listsAny reports whether the ID list contains an ID that is known and, if wanted is not nil, wanted.
func listsAny(list string, known, wanted map[string]struct{}) bool {
	for _, id := range family.SplitIDs(list) {
		if _, ok := known[id]; !ok {
			continue
		}

		if wanted == nil {
			return true
		}

		if _, ok := wanted[id]; ok {
			return true
		}
	}

	return false
}

func idSet(ids []int64) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[strconv.FormatInt(id, 10)] = struct{}{}
	}

	return set
}

func optionalIDSet(ids []int64) map[string]struct{} {
	if ids == nil {
		return nil
	}

	return idSet(ids)
}

func jurisdictionIDs(jurisdictions []rulestore.Jurisdiction) []int64 {
	ids := make([]int64, 0, len(jurisdictions))
	for _, j := range jurisdictions {
		ids = append(ids, j.ID)
	}

	return ids
}

func matterTypeIDs(matterTypes []rulestore.MatterType) []int64 {
	ids := make([]int64, 0, len(matterTypes))
	for _, m := range matterTypes {
		ids = append(ids, m.ID)
	}

	return ids
}

func jurisdictionNames(jurisdictions []rulestore.Jurisdiction) []string {
	names := make([]string, 0, len(jurisdictions))
	for _, j := range jurisdictions {
		names = append(names, j.Name)
	}

	return names
}

func matterTypeNames(matterTypes []rulestore.MatterType) []string {
	names := make([]string, 0, len(matterTypes))
	for _, m := range matterTypes {
		names = append(names, m.Name)
	}

	return names
}

// distinctNames drops repeated names while keeping the first occurrence's position.
func distinctNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	distinct := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		distinct = append(distinct, n)
	}

	return distinct
}
