package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads the simulation configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePlatformer(data)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("platformer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePlatformer(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/platformer.yaml"); err == nil {
		if cfg, err := parsePlatformer(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePlatformer(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parsePlatformer decodes YAML on top of the hardcoded defaults so partial
// files only override what they mention.
func parsePlatformer(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if c.Physics.TileSize <= 0 {
		errs = append(errs, errors.New("physics.tile_size must be positive"))
	}
	if c.Physics.MaxFallSpeed <= 0 || c.Physics.MaxFallSpeed >= float64(c.Physics.TileSize)/2 {
		errs = append(errs, errors.New("physics.max_fall_speed must be in (0, tile_size/2)"))
	}
	if c.Hero.Friction >= 0 || c.Orc.Friction >= 0 || c.Town.Friction >= 0 {
		errs = append(errs, errors.New("friction coefficients must be negative"))
	}
	if c.Hero.MaxArrows <= 0 {
		errs = append(errs, errors.New("hero.max_arrows must be positive"))
	}
	if c.Hero.ArrowCooldown <= 1 {
		errs = append(errs, errors.New("hero.arrow_cooldown must be greater than 1"))
	}
	if len(c.Fly.Speeds) == 0 {
		errs = append(errs, errors.New("fly.speeds must not be empty"))
	}
	for name, p := range c.Difficulties {
		if p.SpawnerCap < 0 {
			errs = append(errs, fmt.Errorf("difficulties.%s.spawner_cap must not be negative", name))
		}
		if p.CoinChance < 0 || p.CoinChance > 1 {
			errs = append(errs, fmt.Errorf("difficulties.%s.coin_chance must be in [0, 1]", name))
		}
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}
