package chatbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultRulesFile is the name of the seeded rule source.
const DefaultRulesFile = "data.json"

// DefaultRules are written to a fresh rules directory.
func DefaultRules() []Rule {
	return []Rule{
		{
			Match:    []string{"What is my name?", "Who am I?"},
			Response: "Your name is {player_name}.",
		},
		{
			Match:    []string{"What is my uuid?", "Tell me my player ID"},
			Response: "Your UUID is {player_uuid}.",
		},
		{
			Match:    []string{"What time is it on the server?", "Tell me the server time"},
			Response: "The current server time is {time_server}.",
		},
		{
			Match:    []string{"What time is it in Bangkok?", "Tell me Bangkok time"},
			Response: "The current time in Bangkok is {time_bangkok}.",
		},
		{
			Match:    []string{"What time is it in UTC?", "Tell me the UTC time"},
			Response: "The current UTC time is {time_utc}.",
		},
		{
			Match:    []string{"What time is it in GMT+7?", "Tell me time in GMT+07:00"},
			Response: "The current time in GMT+7 is {time_gmt_plus_07_00}.",
		},
		{
			Match:    []string{"Tell me all placeholders", "Show me the AI variables"},
			Response: "You can use: {player_name}, {player_uuid}, {time_server}, {time_utc}, {time_bangkok}, etc.",
		},
	}
}

// SeedRules creates dir with the default rule source. It does nothing when
// dir already exists, so operators can empty the directory deliberately.
// The returned bool reports whether a file was written.
func SeedRules(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat rules directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create rules directory: %w", err)
	}
	data, err := json.MarshalIndent(DefaultRules(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode default rules: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, DefaultRulesFile), data, "rules-*.tmp"); err != nil {
		return false, fmt.Errorf("write default rules: %w", err)
	}
	return true, nil
}

// SeedConfig writes the default config.yml when path does not exist.
func SeedConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat chatbot config: %w", err)
	}
	if err := DefaultConfig().Save(path); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}
