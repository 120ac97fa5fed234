package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EmptyPath_ReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ValidYAML_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
cores: 4
model: many-to-one
tick_ms: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cores)
	assert.Equal(t, "many-to-one", cfg.Model)
	assert.Equal(t, 50, cfg.TickMS)
}

func TestLoadConfig_PartialYAML_KeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cores: 8\n"), 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Cores)
	assert.Equal(t, DefaultConfig().Model, cfg.Model)
	assert.Equal(t, DefaultConfig().TickMS, cfg.TickMS)
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cores: [not an int\n"), 0644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfig_ClampsNonPositiveTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cores: 2\ntick_ms: -5\n"), 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().TickMS, cfg.TickMS)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Cores: 1}.Validate())
	assert.NoError(t, Config{Cores: 16}.Validate())

	err := Config{Cores: 0}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
