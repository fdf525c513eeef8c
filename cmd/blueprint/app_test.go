package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/blueprint/internal/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(v system.View) []string {
	var out []string
	for _, a := range v.Actions {
		out = append(out, a.Label)
	}
	return out
}

// newTestApp loads the sample content shipped with the repository.
func newTestApp(t *testing.T) *app {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	cfg := filepath.Join(t.TempDir(), "blueprint.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[content]
paths = ["`+filepath.ToSlash(filepath.Join(root, "content"))+`"]

[scripting]
scripts_dir = "`+filepath.ToSlash(filepath.Join(root, "scripts"))+`"

[scripting.globals]
scene = "cliff"
bridge = "fragile"
lit = false

[logging]
level = "error"
`), 0o644))

	configPath = cfg
	t.Cleanup(func() { configPath = "" })

	a, err := newApp(context.Background())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func perform(t *testing.T, a *app, label string) string {
	t.Helper()
	out, err := system.Perform(a.scene.World(), label)
	require.NoError(t, err, label)
	require.NoError(t, a.runner.Step())
	return out
}

func TestSampleAdventure(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.runner.Step())

	assert.Len(t, a.sync.Last().Spawned, 4)
	assert.Equal(t, "A lighter lies on the ground.\nYou stand in front of a bridge. It looks fragile.", a.present.View().Description)
	assert.Equal(t, []string{"Pick up lighter", "Cross the bridge"}, labels(a.present.View()))

	assert.Equal(t, "Picked up lighter.", perform(t, a, "Pick up lighter"))
	assert.Equal(t, []string{"Light the lighter", "Cross the bridge"}, labels(a.present.View()))

	assert.Equal(t, "The flame flickers.", perform(t, a, "Light the lighter"))
	assert.Empty(t, perform(t, a, "Cross the bridge"))
	assert.Equal(t, "You are standing on the bridge. It seems very unstable.", a.present.View().Description)
	assert.Equal(t, []string{"Proceed", "Go back"}, labels(a.present.View()))

	assert.Contains(t, perform(t, a, "Proceed"), "You fall down a pit.")
	assert.Equal(t, "You see a ladder.\nYou stand in front of a bridge. It looks broken.", a.present.View().Description)
	assert.Equal(t, []string{"Climb ladder"}, labels(a.present.View()))

	// state changes never reconfigure components
	for id, rep := range a.sync.Last().Entities {
		assert.False(t, rep.Changed(), string(id))
	}
}

func TestLoadConfig_Env(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), 0o644))
	t.Setenv(configEnv, path)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)

	configPath = filepath.Join(t.TempDir(), "missing.toml")
	t.Cleanup(func() { configPath = "" })
	_, err = loadConfig()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb"))
}
