package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Difficulty names a difficulty profile.
type Difficulty string

const (
	DifficultyNormal     Difficulty = "normal"
	DifficultyImpossible Difficulty = "impossible"
	DifficultyGod        Difficulty = "god"
)

// ErrUnknownDifficulty is returned for a difficulty name without a profile.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Difficulties returns the built-in difficulty names in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyNormal, DifficultyImpossible, DifficultyGod}
}

// ParseDifficulty converts a user-supplied name into a Difficulty.
// The empty string selects normal.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal":
		return DifficultyNormal, nil
	case "impossible", "hard":
		return DifficultyImpossible, nil
	case "god":
		return DifficultyGod, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
}

// Profile returns the profile for d, falling back to the built-in profile
// when the loaded configuration does not define one.
func (c PlatformerConfig) Profile(d Difficulty) (DifficultyProfile, error) {
	if p, ok := c.Difficulties[d]; ok {
		return p, nil
	}
	if p, ok := DefaultProfiles()[d]; ok {
		return p, nil
	}
	return DifficultyProfile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
}

// Price returns the shop price of an item after the difficulty multiplier,
// truncated to whole coins.
func (p DifficultyProfile) Price(base float64) int {
	if p.Multiplier <= 0 {
		return int(base)
	}
	return int(math.Floor(base / p.Multiplier))
}
