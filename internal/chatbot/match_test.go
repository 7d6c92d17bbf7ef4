package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBidirectionalContainment(t *testing.T) {
	rules := NewRuleSet(
		Rule{Match: []string{"What is my name?", "Who am I?"}, Response: "name"},
		Rule{Match: []string{"time"}, Response: "time"},
		Rule{Match: []string{"bangkok"}, Response: "bangkok"},
	)

	cases := []struct {
		input string
		want  []string
	}{
		{"wHo Am I?", []string{"name"}},
		{"  who am i?  ", []string{"name"}},
		{"who am", []string{"name"}},
		{"What time is it in Bangkok right now", []string{"time", "bangkok"}},
		{"TIME", []string{"time"}},
		{"who am i??", []string{"name"}},
		{"nothing relevant", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Match(rules, tc.input), "input %q", tc.input)
	}
}

func TestMatchOneResponsePerRule(t *testing.T) {
	rules := NewRuleSet(Rule{Match: []string{"hello", "hello there", "there"}, Response: "hi"})

	assert.Equal(t, []string{"hi"}, Match(rules, "hello there"))
}

func TestMatchPreservesRuleOrder(t *testing.T) {
	rules := NewRuleSet(
		Rule{Match: []string{"zeta"}, Response: "first"},
		Rule{Match: []string{"alpha"}, Response: "second"},
		Rule{Match: []string{"alpha zeta"}, Response: "third"},
	)

	assert.Equal(t, []string{"first", "second", "third"}, Match(rules, "alpha zeta"))
}

func TestMatchEmptyInputMatchesEveryRule(t *testing.T) {
	rules := NewRuleSet(
		Rule{Match: []string{"one"}, Response: "1"},
		Rule{Match: []string{"two"}, Response: "2"},
	)

	assert.Equal(t, []string{"1", "2"}, Match(rules, "   "))
}

func TestMatchUnicodeFolding(t *testing.T) {
	rules := NewRuleSet(Rule{Match: []string{"Straße"}, Response: "street"})

	assert.Equal(t, []string{"street"}, Match(rules, "STRASSE"))
	assert.Equal(t, []string{"street"}, Match(rules, "straße"))
}

func TestMatchNilRuleSet(t *testing.T) {
	assert.Empty(t, Match(nil, "anything"))
}

func TestMatchCompleteness(t *testing.T) {
	patterns := []string{"Tell me the server time", "x", "What time is it in GMT+7?"}
	inputs := []string{"server", "TELL ME THE SERVER TIME please", "x", "gmt+7", "what TIME is it in gmt+7?"}
	for _, p := range patterns {
		rules := NewRuleSet(Rule{Match: []string{p}, Response: "hit"})
		for _, in := range inputs {
			got := Match(rules, in)
			if containsFold(in, p) {
				assert.Equal(t, []string{"hit"}, got, "pattern %q input %q", p, in)
			} else {
				assert.Empty(t, got, "pattern %q input %q", p, in)
			}
		}
	}
}

func containsFold(input, pattern string) bool {
	a := strings.ToLower(strings.TrimSpace(input))
	b := strings.ToLower(pattern)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
