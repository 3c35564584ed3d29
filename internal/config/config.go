package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Scene   SceneConfig   `toml:"scene"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type EngineConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`  // fixed simulation step
	FrameRate time.Duration `toml:"frame_rate"` // interval between frame-only updates
	MaxTicks  uint64        `toml:"max_ticks"`  // 0 = run until interrupted
}

type SceneConfig struct {
	Name   string `toml:"name"`
	Prefab string `toml:"prefab"` // YAML prefab instantiated under the scene root
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Profile    string `toml:"profile"` // "", "cpu" or "mem"
	ProfileDir string `toml:"profile_dir"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate:  16 * time.Millisecond,
			FrameRate: 16 * time.Millisecond,
		},
		Scene: SceneConfig{
			Name: "main",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			ProfileDir: ".",
		},
	}
}

func (c *Config) validate() error {
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate must be positive, got %s", c.Engine.TickRate)
	}
	if c.Engine.FrameRate < 0 {
		return fmt.Errorf("engine.frame_rate must not be negative, got %s", c.Engine.FrameRate)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("debug.profile must be cpu or mem, got %q", c.Debug.Profile)
	}
	return nil
}
