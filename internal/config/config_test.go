package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ADDR", "STORAGE_DRIVER", "POSTGRES_DSN", "AI_PROVIDER", "AI_API_KEY",
		"AI_MODEL", "AI_BASE_URL", "AI_TIMEOUT", "TIMEZONE", "INSIGHTS_FILE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, ProviderOpenAI, cfg.AIProvider)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, "info", cfg.LogLevel)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestNew_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
	assert.Equal(t, 15*time.Second, cfg.AITimeout)
}

func TestNew_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORAGE_DRIVER": "sqlite",
		"AI_PROVIDER":    "llama",
		"AI_TIMEOUT":     "soon",
		"TIMEZONE":       "Mars/Olympus",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestLoadInsights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.yaml")
	content := "encouragements:\n  - Small steps count\n  - Keep writing\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tmpl, err := LoadInsights(path)
	require.NoError(t, err)
	assert.Nil(t, tmpl.Onboarding)
	assert.Equal(t, []string{"Small steps count", "Keep writing"}, tmpl.Encouragements)

	empty, err := LoadInsights("")
	require.NoError(t, err)
	assert.Nil(t, empty.Encouragements)

	_, err = LoadInsights(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
