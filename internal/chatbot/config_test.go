package chatbot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Config{
		Token:    TokenConfig{Type: TokenPlayer},
		Timezone: "Asia/Bangkok",
		Models: map[string][]string{
			"openai": {"gpt-4o", "gpt-4o-mini"},
		},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	loc, err := loaded.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoadConfigNormalisesTokenType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("token:\n  type: \"  PLAYER \"\n"), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, TokenPlayer, cfg.Token.Type)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated\n"), 0o644))

	cfg, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigLocationFallsBack(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = Config{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.Error(t, err)
	assert.Equal(t, time.Local, loc)
}
