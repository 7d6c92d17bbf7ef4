package chatbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// maxParallelSources bounds concurrent source parsing.
const maxParallelSources = 4

// SourceError records a rule source that contributed no rules.
type SourceError struct {
	Path string
	Err  error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// LoadReport summarises a load. Failed sources contributed zero rules;
// skipped records were dropped from otherwise readable sources.
type LoadReport struct {
	Sources int
	Rules   int
	Skipped int
	Failed  []SourceError
}

// AllFailed reports whether sources were found but none of them could be
// parsed.
func (r LoadReport) AllFailed() bool {
	return r.Sources > 0 && len(r.Failed) == r.Sources
}

type sourceResult struct {
	rules   []Rule
	skipped int
	err     error
}

// LoadDir loads every rule file in dir. Files are read in lexical order. A
// missing directory yields an empty rule set.
func LoadDir(dir string, logger *zap.Logger) (*RuleSet, LoadReport) {
	logger = orNop(logger)
	paths, err := ruleFiles(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("chatbot rule directory not found", zap.String("dir", dir))
			return NewRuleSet(), LoadReport{}
		}
		logger.Warn("chatbot rule directory unreadable", zap.String("dir", dir), zap.Error(err))
		// The directory counts as the one source that failed.
		return NewRuleSet(), LoadReport{Sources: 1, Failed: []SourceError{{Path: dir, Err: err}}}
	}
	return LoadSources(paths, logger)
}

// LoadSources parses each source independently and concatenates their rules
// in source order. A source that cannot be parsed contributes nothing; the
// remaining sources still load.
func LoadSources(paths []string, logger *zap.Logger) (*RuleSet, LoadReport) {
	logger = orNop(logger)
	results := make([]sourceResult, len(paths))

	var g errgroup.Group
	g.SetLimit(maxParallelSources)
	for i, path := range paths {
		g.Go(func() error {
			rules, skipped, err := parseSource(path)
			results[i] = sourceResult{rules: rules, skipped: skipped, err: err}
			return nil
		})
	}
	_ = g.Wait()

	report := LoadReport{Sources: len(paths)}
	merged := make([]Rule, 0)
	for i, res := range results {
		if res.err != nil {
			report.Failed = append(report.Failed, SourceError{Path: paths[i], Err: res.err})
			logger.Warn("chatbot rule source skipped", zap.String("source", paths[i]), zap.Error(res.err))
			continue
		}
		if res.skipped > 0 {
			logger.Warn("chatbot rule records skipped",
				zap.String("source", paths[i]),
				zap.Int("skipped", res.skipped))
		}
		report.Skipped += res.skipped
		merged = append(merged, res.rules...)
	}
	report.Rules = len(merged)

	if report.AllFailed() {
		logger.Warn("no chatbot rule source could be parsed", zap.Int("sources", report.Sources))
	}
	logger.Info("Loaded chatbot rules",
		zap.Int("rules", report.Rules),
		zap.Int("sources", report.Sources),
		zap.Int("failed", len(report.Failed)))
	return &RuleSet{rules: merged}, report
}

func ruleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isRuleFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func isRuleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func parseSource(path string) ([]Rule, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read rule source: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLRules(data)
	default:
		return parseJSONRules(data)
	}
}

func parseJSONRules(data []byte) ([]Rule, int, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("decode rule list: %w", err)
	}
	rules := make([]Rule, 0, len(records))
	skipped := 0
	for _, raw := range records {
		var record Rule
		if err := json.Unmarshal(raw, &record); err != nil {
			skipped++
			continue
		}
		rule, err := newRule(record.Match, record.Response)
		if err != nil {
			skipped++
			continue
		}
		rules = append(rules, rule)
	}
	return rules, skipped, nil
}

func parseYAMLRules(data []byte) ([]Rule, int, error) {
	var records []yaml.Node
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("decode rule list: %w", err)
	}
	rules := make([]Rule, 0, len(records))
	skipped := 0
	for i := range records {
		var record Rule
		if err := checkYAMLStrings(&records[i]); err != nil {
			skipped++
			continue
		}
		if err := records[i].Decode(&record); err != nil {
			skipped++
			continue
		}
		rule, err := newRule(record.Match, record.Response)
		if err != nil {
			skipped++
			continue
		}
		rules = append(rules, rule)
	}
	return rules, skipped, nil
}

// checkYAMLStrings rejects match items and responses that YAML would
// otherwise coerce to strings, such as numbers and booleans. The JSON decoder
// refuses the same records.
func checkYAMLStrings(record *yaml.Node) error {
	if record.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(record.Content); i += 2 {
		key, value := record.Content[i].Value, resolveAlias(record.Content[i+1])
		switch key {
		case "match":
			if value.Kind != yaml.SequenceNode {
				continue
			}
			for _, item := range value.Content {
				if !isYAMLString(resolveAlias(item)) {
					return fmt.Errorf("match pattern at line %d is not a string", item.Line)
				}
			}
		case "response":
			if !isYAMLString(value) {
				return fmt.Errorf("response at line %d is not a string", value.Line)
			}
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// isYAMLString accepts string scalars and nulls, which decode to "".
func isYAMLString(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode {
		return false
	}
	switch node.ShortTag() {
	case "!!str", "!!null":
		return true
	}
	return false
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
