package chatbot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSourcesKeepsWellFormedRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "mixed.json", `[
		{"match": ["hello"], "response": "Hi {player_name}!"},
		{"match": "not a list", "response": 42}
	]`)

	rules, report := LoadSources([]string{path}, nil)

	require.Equal(t, 1, rules.Len())
	assert.Equal(t, 1, report.Rules)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "Hi {player_name}!", rules.Rules()[0].Response)
}

func TestLoadSourcesRejectsEmptyMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "empty.json", `[
		{"match": [], "response": "never"},
		{"match": ["", "   "], "response": "never either"},
		{"response": "no match key"},
		{"match": ["ok", ""], "response": "fine"}
	]`)

	rules, report := LoadSources([]string{path}, nil)

	require.Equal(t, 1, rules.Len())
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, []string{"ok"}, rules.Rules()[0].Match)
}

func TestLoadSourcesSurvivesBrokenSource(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "a.json", `[{"match": ["one"], "response": "1"}]`)
	broken := writeSource(t, dir, "b.json", `{"match": ["object, not list"]}`)
	missing := filepath.Join(dir, "missing.json")
	later := writeSource(t, dir, "c.json", `[{"match": ["two"], "response": "2"}]`)

	rules, report := LoadSources([]string{good, broken, missing, later}, nil)

	require.Equal(t, 2, rules.Len())
	assert.Equal(t, 4, report.Sources)
	require.Len(t, report.Failed, 2)
	assert.Equal(t, broken, report.Failed[0].Path)
	assert.Equal(t, missing, report.Failed[1].Path)
	assert.ErrorIs(t, report.Failed[1], os.ErrNotExist)
	assert.False(t, report.AllFailed())
}

func TestLoadSourcesAllFailed(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.json", `not json`)
	b := writeSource(t, dir, "b.yml", "key: value\n")

	rules, report := LoadSources([]string{a, b}, nil)

	assert.Equal(t, 0, rules.Len())
	assert.True(t, report.AllFailed())
}

func TestLoadDirOrdersSourcesLexically(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "20-second.json", `[{"match": ["b"], "response": "second"}]`)
	writeSource(t, dir, "10-first.json", `[
		{"match": ["a"], "response": "first"},
		{"match": ["a2"], "response": "first-2"}
	]`)
	writeSource(t, dir, "30-third.yaml", "- match: [\"c\"]\n  response: third\n")
	writeSource(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	rules, report := LoadDir(dir, nil)

	require.Equal(t, 3, report.Sources)
	var responses []string
	for _, r := range rules.Rules() {
		responses = append(responses, r.Response)
	}
	assert.Equal(t, []string{"first", "first-2", "second", "third"}, responses)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	rules, report := LoadDir(filepath.Join(t.TempDir(), "absent"), nil)

	assert.Equal(t, 0, rules.Len())
	assert.Equal(t, 0, report.Sources)
	assert.Empty(t, report.Failed)
}

func TestLoadDirKeepsDuplicatesAcrossSources(t *testing.T) {
	dir := t.TempDir()
	body := `[{"match": ["ping"], "response": "pong"}]`
	writeSource(t, dir, "a.json", body)
	writeSource(t, dir, "b.json", body)

	rules, _ := LoadDir(dir, nil)

	require.Equal(t, 2, rules.Len())
	assert.Equal(t, []string{"pong", "pong"}, Match(rules, "ping"))
}

func TestParseYAMLRulesSkipsMalformedRecord(t *testing.T) {
	rules, skipped, err := parseYAMLRules([]byte(`
- match: ["hello", "hi"]
  response: "Hello!"
- match: 12
  response: "bad"
`))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"hello", "hi"}, rules[0].Match)
}

func TestLoadDirUnreadableDirectoryIsAFailedSource(t *testing.T) {
	notDir := writeSource(t, t.TempDir(), "rules.json", `[]`)

	rules, report := LoadDir(notDir, nil)

	assert.Equal(t, 0, rules.Len())
	assert.Equal(t, 1, report.Sources)
	require.Len(t, report.Failed, 1)
	assert.True(t, report.AllFailed())
}

func TestYAMLAndJSONRejectTheSameRecords(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeSource(t, dir, "a.json", `[
		{"match": [1, "hi"], "response": "numeric pattern"},
		{"match": ["hi"], "response": true},
		{"match": ["hello"], "response": "Hello!"}
	]`)
	yamlPath := writeSource(t, dir, "b.yaml", `
- match: [1, hi]
  response: numeric pattern
- match: [hi]
  response: true
- match: [hello]
  response: Hello!
`)

	for _, path := range []string{jsonPath, yamlPath} {
		rules, report := LoadSources([]string{path}, nil)
		require.Equal(t, 1, rules.Len(), path)
		assert.Equal(t, 2, report.Skipped, path)
		assert.Equal(t, []string{"Hello!"}, Match(rules, "hello"), path)
	}
}

func TestNewRuleRejectsBlankPatterns(t *testing.T) {
	_, err := newRule([]string{"", "   "}, "nobody hears this")
	require.ErrorIs(t, err, errEmptyMatch)

	rule, err := newRule([]string{" ", "ping"}, "pong")
	require.NoError(t, err)
	assert.Equal(t, []string{"ping"}, rule.Match)
}
