package config_test

import (
	"testing"

	"github.com/copycraft-ai/copycraft/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5174, cfg.Port)
	assert.Equal(t, "copycraft.db", cfg.DatabaseFile)
	assert.Equal(t, 10, cfg.DailyCredits)
	assert.Equal(t, "UTC", cfg.Timezone.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_FILE", "/tmp/test.db")
	t.Setenv("DAILY_CREDITS", "25")
	t.Setenv("LLM_MODEL", "gpt-4o")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DatabaseFile)
	assert.Equal(t, 25, cfg.DailyCredits)
	assert.Equal(t, "gpt-4o", cfg.LLMModel)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_NegativeCreditsRejected(t *testing.T) {
	t.Setenv("DAILY_CREDITS", "-3")
	_, err := config.Load()
	assert.Error(t, err)
}
