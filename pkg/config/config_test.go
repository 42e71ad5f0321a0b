package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("CACHE_TTL_MINUTES", "")
	t.Setenv("GITHUB_API_URL", "")

	require.NoError(t, Load())

	assert.Equal(t, "llama-3.3-70b-versatile", AppConfig.LLM.Model)
	assert.Equal(t, 0.6, AppConfig.LLM.Temperature)
	assert.Equal(t, 60, AppConfig.Cache.TTLMinutes)
	assert.Equal(t, "https://api.github.com/", AppConfig.GitHub.APIURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("CACHE_TTL_MINUTES", "5")
	t.Setenv("PORT", "9090")

	require.NoError(t, Load())

	assert.Equal(t, 0.2, AppConfig.LLM.Temperature)
	assert.Equal(t, 5, AppConfig.Cache.TTLMinutes)
	assert.Equal(t, "9090", AppConfig.Server.Port)
}

func TestGetEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("GITMENTOR_TEST_INT", "not-a-number")
	t.Setenv("GITMENTOR_TEST_FLOAT", "nope")

	assert.Equal(t, 7, getEnvAsInt("GITMENTOR_TEST_INT", 7))
	assert.Equal(t, 1.5, getEnvAsFloat("GITMENTOR_TEST_FLOAT", 1.5))
	assert.Equal(t, "fallback", getEnv("GITMENTOR_TEST_UNSET", "fallback"))
}
