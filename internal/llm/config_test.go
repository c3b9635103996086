package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_ModelFallbackOrder(t *testing.T) {
	cfg := DefaultConfig()

	require.NotEmpty(t, cfg.Models)
	assert.Equal(t, DefaultModels, cfg.Models)
	assert.GreaterOrEqual(t, cfg.MaxAttempts, 2)
	assert.LessOrEqual(t, cfg.MaxAttempts, 3)
}

func TestConfig_Validate_MissingAPIKey(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestConfig_Validate_NoModels(t *testing.T) {
	cfg := DefaultConfig().WithAPIKey("test-key")
	cfg.Models = nil

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestConfig_WithAPIKey_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultConfig()
	derived := cfg.WithAPIKey("test-key")

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "test-key", derived.APIKey)
	assert.Equal(t, cfg.Models, derived.Models)
}

func TestResolveAPIKey_PrimaryWinsOverLegacy(t *testing.T) {
	t.Setenv(EnvAPIKey, "primary-key")
	t.Setenv(EnvAPIKeyLegacy, "legacy-key")

	key, err := ResolveAPIKey()

	require.NoError(t, err)
	assert.Equal(t, "primary-key", key)
}

func TestResolveAPIKey_LegacyAlias(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyLegacy, "legacy-key")

	key, err := ResolveAPIKey()

	require.NoError(t, err)
	assert.Equal(t, "legacy-key", key)
}

func TestResolveAPIKey_Missing(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyLegacy, "")

	_, err := ResolveAPIKey()

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}
