package chatbot

import (
	"strings"

	"golang.org/x/text/cases"
)

// Match returns the response template of every rule with a pattern that
// overlaps input, in rule order. A pattern overlaps when either the folded
// input contains the folded pattern or the pattern contains the input. Each
// rule contributes at most one template.
//
// An input that is empty after trimming is contained in every pattern and
// therefore matches every rule; callers that do not want that filter blank
// input first.
func Match(rules *RuleSet, input string) []string {
	if rules.Len() == 0 {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(input))

	var out []string
	for _, rule := range rules.rules {
		for _, pattern := range rule.Match {
			candidate := fold.String(pattern)
			if strings.Contains(needle, candidate) || strings.Contains(candidate, needle) {
				out = append(out, rule.Response)
				break
			}
		}
	}
	return out
}
