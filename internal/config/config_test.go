package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mousecraft/omega/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[engine]
tick_rate = "20ms"
max_ticks = 100

[scene]
prefab = "data/prefabs/main.yaml"

[logging]
level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Engine.TickRate)
	assert.Equal(t, 16*time.Millisecond, cfg.Engine.FrameRate)
	assert.Equal(t, uint64(100), cfg.Engine.MaxTicks)
	assert.Equal(t, "main", cfg.Scene.Name)
	assert.Equal(t, "data/prefabs/main.yaml", cfg.Scene.Prefab)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	for name, doc := range map[string]string{
		"zero tick":      "[engine]\ntick_rate = \"0s\"\n",
		"negative frame": "[engine]\nframe_rate = \"-1ms\"\n",
		"bad profile":    "[debug]\nprofile = \"block\"\n",
		"bad toml":       "[engine\n",
		"bad duration":   "[engine]\ntick_rate = \"soon\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omega.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nname = \"demo\"\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Scene.Name)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
