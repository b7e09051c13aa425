package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/fpsproto/input"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(40), cfg.Weapon.ProjectileSpeed)
	assert.Equal(t, float32(100), cfg.Weapon.RayDistance)
	assert.Equal(t, float32(1), cfg.Player.Mass)
	assert.Equal(t, float32(80), cfg.Player.JumpImpulse/cfg.Player.Mass)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  width: 640
weapon:
  projectileSpeed: 25
player:
  spawn: [1, 2, 3]
bindings:
  debug: F3
`))
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(25), cfg.Weapon.ProjectileSpeed)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Player.Spawn)

	keys := cfg.KeyMap()
	assert.Equal(t, input.KeyF3, keys[input.Debug])
	assert.Equal(t, input.KeyW, keys[input.Forward])
	assert.Equal(t, input.MouseLeft, keys[input.Fire])
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`
weapon:
  projectileSpeed: 0
player:
  mass: -1
bindings:
  crouch: C
  jump: Hyper
`))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "projectileSpeed")
	assert.Contains(t, msg, "player.mass")
	assert.Contains(t, msg, `unknown action "crouch"`)
	assert.Contains(t, msg, `unknown key "Hyper"`)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("window: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  gravity: 3.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), cfg.Physics.Gravity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
