// Package chatbot implements the rule based responder players talk to with
// the ask command. Rules are loaded once from JSON or YAML sources, matched
// against free text with a case-insensitive containment test, and their
// response templates are filled from the asking player's profile and a set
// of clock placeholders.
package chatbot

import (
	"errors"
	"strings"
)

// errEmptyMatch is reported for records whose match list has no usable
// pattern.
var errEmptyMatch = errors.New("rule has no match patterns")

// Rule pairs trigger patterns with a response template.
type Rule struct {
	Match    []string `json:"match" yaml:"match"`
	Response string   `json:"response" yaml:"response"`
}

func newRule(match []string, response string) (Rule, error) {
	patterns := make([]string, 0, len(match))
	for _, pattern := range match {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		patterns = append(patterns, pattern)
	}
	if len(patterns) == 0 {
		return Rule{}, errEmptyMatch
	}
	return Rule{Match: patterns, Response: response}, nil
}

// RuleSet is an ordered, read-only collection of rules. It is safe for
// concurrent use once constructed.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet copies the provided rules into a set, dropping any rule without
// a usable pattern.
func NewRuleSet(rules ...Rule) *RuleSet {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		cleaned, err := newRule(r.Match, r.Response)
		if err != nil {
			continue
		}
		out = append(out, cleaned)
	}
	return &RuleSet{rules: out}
}

// Len reports the number of rules.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules returns a copy of the rules in load order.
func (s *RuleSet) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = Rule{Match: append([]string(nil), r.Match...), Response: r.Response}
	}
	return out
}
