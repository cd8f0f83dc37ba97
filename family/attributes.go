package family

import (
	"slices"
	"strconv"
	"strings"

	"github.com/heliosip/countryrules/rulestore"
)

const attributeListSeparator = ","

// AttributePair is one (jurisdiction, matter type) combination a rule applies to.
// Both IDs are in canonical decimal form.
type AttributePair struct {
	JurisdictionID string
	MatterTypeID   string
}

// AttributePairs returns the distinct (jurisdiction, matter type) pairs of a rule, sorted.
//
// Tokens are trimmed; empty tokens and tokens that are not base-10 integers are skipped without
// affecting the remaining tokens. A rule lacking either list yields no pairs and therefore matches
// no other rule.
func AttributePairs(rule rulestore.RuleDefinition) []AttributePair {
	jurisdictionIDs := SplitIDs(rule.Jurisdiction)
	matterTypeIDs := SplitIDs(rule.MatterType)

	pairs := make([]AttributePair, 0, len(jurisdictionIDs)*len(matterTypeIDs))
	for _, j := range jurisdictionIDs {
		for _, m := range matterTypeIDs {
			pairs = append(pairs, AttributePair{JurisdictionID: j, MatterTypeID: m})
		}
	}

	return pairs
}

// SplitIDs splits a comma-separated ID list into distinct canonical IDs in ascending numeric order.
func SplitIDs(list string) []string {
	numbers := make([]int64, 0)

	for _, token := range strings.Split(list, attributeListSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue // malformed token
		}

		numbers = append(numbers, n)
	}

	slices.Sort(numbers)
	numbers = slices.Compact(numbers)

	ids := make([]string, len(numbers))
	for i, n := range numbers {
		ids[i] = strconv.FormatInt(n, 10)
	}

	return ids
}

type pairSet map[AttributePair]struct{}

func newPairSet(pairs []AttributePair) pairSet {
	set := make(pairSet, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}

	return set
}

func (s pairSet) sharesAnyWith(other pairSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}

	for p := range small {
		if _, ok := large[p]; ok {
			return true
		}
	}

	return false
}
