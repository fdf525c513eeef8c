package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Content   ContentConfig   `toml:"content"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ContentConfig struct {
	Paths []string `toml:"paths"` // YAML files or directories of them
}

type ScriptingConfig struct {
	ScriptsDir string         `toml:"scripts_dir"`
	Globals    map[string]any `toml:"globals"` // exposed to expressions before content loads
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config { return defaults() }

func defaults() *Config {
	return &Config{
		Content: ContentConfig{
			Paths: []string{"content"},
		},
		Scripting: ScriptingConfig{
			ScriptsDir: "scripts",
			Globals:    map[string]any{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
