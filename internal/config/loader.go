package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const threesFile = "threes.yaml"

// Source describes where a configuration was loaded from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadThrees loads the Threes configuration.
// Search order: customPath -> ~/.threes/configs/threes.yaml -> ./configs/threes.yaml -> embedded default
func LoadThrees(customPath string) (ThreesConfig, error) {
	cfg, _, err := LoadThreesFrom(customPath)
	return cfg, err
}

// LoadThreesFrom is LoadThrees that also reports which source won.
// Only a custom path is allowed to fail; broken optional files are skipped.
func LoadThreesFrom(customPath string) (ThreesConfig, Source, error) {
	if customPath != "" {
		cfg, err := readThrees(customPath)
		if err != nil {
			return ThreesConfig{}, SourceCustom, err
		}
		if err := cfg.Validate(); err != nil {
			return ThreesConfig{}, SourceCustom, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := userConfigPath(threesFile); userCfgPath != "" {
		if cfg, err := readThrees(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, SourceUser, nil
		}
	}

	if cfg, err := readThrees(filepath.Join("configs", threesFile)); err == nil && cfg.Validate() == nil {
		return cfg, SourceLocal, nil
	}

	cfg := DefaultThreesConfig()
	if err := yaml.Unmarshal(defaultThreesYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultThreesConfig(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

// readThrees decodes a file on top of the defaults so omitted keys keep
// their default values.
func readThrees(path string) (ThreesConfig, error) {
	cfg := DefaultThreesConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".threes", "configs", filename)
}
