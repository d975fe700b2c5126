package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte(`
player:
  dash_cooldown_ms: 1000
  move_speed: 3
levels:
  - {jumps: 1, dashes: 1, fireballs: 1}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cfg.Player.DashCooldownMS)
	assert.Equal(t, 3.0, cfg.Player.MoveSpeed)
	assert.Equal(t, 3, cfg.Player.MaxHealth, "untouched fields keep their defaults")
	assert.Equal(t, []LevelConfig{{Jumps: 1, Dashes: 1, Fireballs: 1}}, cfg.Levels)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enemy:\n  wander_min: 50\n  wander_max: 10\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wander range")
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse simulation config")
}

func TestLevelClampsToTable(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LevelConfig{}, cfg.Level(-3))
	assert.Equal(t, LevelConfig{Jumps: 11, Dashes: 1, Fireballs: 1}, cfg.Level(4))
	assert.Equal(t, cfg.Levels[len(cfg.Levels)-1], cfg.Level(99))
}
