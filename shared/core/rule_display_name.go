package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleDisplayName renders a rule as "[ID] Activity".
func RuleDisplayName(id int64, activity string) string {
	return fmt.Sprintf("[%d] %s", id, activity)
}

// ParseRuleDisplayName splits a "[ID] Activity" display name into its parts.
// It returns false when the text does not start with a bracketed integer ID.
func ParseRuleDisplayName(displayName string) (int64, string, bool) {
	s := strings.TrimSpace(displayName)
	if !strings.HasPrefix(s, "[") {
		return 0, "", false
	}

	closing := strings.Index(s, "]")
	if closing < 0 {
		return 0, "", false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(s[1:closing]), 10, 64)
	if err != nil {
		return 0, "", false
	}

	return id, strings.TrimSpace(s[closing+1:]), true
}
