package main

import (
	"fmt"
	"os"

	"github.com/l1jgo/blueprint/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultConfigPath = "blueprint.toml"
	configEnv         = "BLUEPRINT_CONFIG"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Entity blueprint runtime",
	Long: `blueprint loads entity definitions and initializers from YAML content,
reconciles them into a world of components and presents the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		l, logErr := newLogger(config.LoggingConfig{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+configEnv+" or "+defaultConfigPath+")")
}

// loadConfig resolves the config path from the flag, then the environment,
// then the default file. A missing default file falls back to built-in
// defaults; an explicitly named file must exist.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); os.IsNotExist(err) {
			return config.Default(), nil
		}
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
