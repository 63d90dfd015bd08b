package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agext/levenshtein"
)

const maxSuggestions = 3

// suggest returns up to maxSuggestions candidates close to name, closest
// first. Case is ignored; ties keep the candidates' order.
func suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	limit := max(2, len(name)/3)
	lower := strings.ToLower(name)

	var near []scored
	for _, c := range candidates {
		d := levenshtein.Distance(lower, strings.ToLower(c), nil)
		if d <= limit {
			near = append(near, scored{c, d})
		}
	}
	slices.SortStableFunc(near, func(a, b scored) int {
		return a.dist - b.dist
	})

	var out []string
	for _, s := range near[:min(len(near), maxSuggestions)] {
		out = append(out, s.name)
	}
	return out
}

// didYouMean formats suggestions as a message suffix, or "" when there are
// none.
func didYouMean(name string, candidates []string) string {
	s := suggest(name, candidates)
	if len(s) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
}
