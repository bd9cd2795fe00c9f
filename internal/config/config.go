package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ScenePath    string `toml:"scene_path"`
	OutputPath   string `toml:"output_path"`
	FallbackPath string `toml:"fallback_path"`
	DBPath       string `toml:"db_path"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ScenePath:    "scene.toml",
		OutputPath:   filepath.Join("public", "oati.json"),
		FallbackPath: filepath.Join(home, "Desktop", "oati.json"),
		DBPath:       filepath.Join(home, ".config", "spx", "spx.db"),
	}

	cfgPath := filepath.Join(home, ".config", "spx", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ScenePath = expandHome(cfg.ScenePath, home)
	cfg.OutputPath = expandHome(cfg.OutputPath, home)
	cfg.FallbackPath = expandHome(cfg.FallbackPath, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
