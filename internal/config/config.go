// Package config loads the YAML rules of a Threes session and the named
// presets that pick a variant.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ThreesConfig contains all configuration for a Threes session.
type ThreesConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Fill   FillConfig   `yaml:"fill"`
	Bag    BagConfig    `yaml:"bag"`
	Scores ScoresConfig `yaml:"scores"`
}

// GridConfig defines the board dimension of the classic variant.
type GridConfig struct {
	Size int `yaml:"size"`
}

// FillConfig is the share of cells occupied when a session is dealt.
type FillConfig struct {
	Numerator   int `yaml:"numerator"`
	Denominator int `yaml:"denominator"`
}

// BagConfig defines the replenishment multiset and the bonus rule.
type BagConfig struct {
	Values []int       `yaml:"values"`
	Bonus  BonusConfig `yaml:"bonus"`
}

// BonusConfig controls the extra high tile added on refill.
type BonusConfig struct {
	Enabled    bool `yaml:"enabled"`
	Threshold  int  `yaml:"threshold"`   // Highest tile needed before bonuses appear
	MinRank    int  `yaml:"min_rank"`    // Smallest exponent e of a 3·2^e bonus
	RankOffset int  `yaml:"rank_offset"` // Largest exponent is rank(highest) - offset
}

// ScoresConfig controls the leaderboard.
type ScoresConfig struct {
	TopN       int `yaml:"top_n"`
	MaxNameLen int `yaml:"max_name_len"`
}

// Validate reports the first inconsistency in the configuration.
func (c ThreesConfig) Validate() error {
	if c.Grid.Size < 2 {
		return fmt.Errorf("config: grid size %d: %w", c.Grid.Size, ErrInvalidConfig)
	}
	if c.Fill.Denominator <= 0 || c.Fill.Numerator <= 0 || c.Fill.Numerator >= c.Fill.Denominator {
		return fmt.Errorf("config: fill %d/%d must be in (0,1): %w",
			c.Fill.Numerator, c.Fill.Denominator, ErrInvalidConfig)
	}
	if len(c.Bag.Values) == 0 {
		return fmt.Errorf("config: empty bag: %w", ErrInvalidConfig)
	}
	for _, v := range c.Bag.Values {
		if !threes.IsTileValue(v) {
			return fmt.Errorf("config: bag value %d: %w", v, ErrInvalidConfig)
		}
	}
	if c.Bag.Bonus.Enabled && c.Bag.Bonus.MinRank < 0 {
		return fmt.Errorf("config: bonus min_rank %d: %w", c.Bag.Bonus.MinRank, ErrInvalidConfig)
	}
	if c.Scores.TopN < 0 || c.Scores.MaxNameLen < 0 {
		return fmt.Errorf("config: negative scores limits: %w", ErrInvalidConfig)
	}
	return nil
}

// Rules converts the configuration into engine rules.
func (c ThreesConfig) Rules() threes.Config {
	return threes.Config{
		GridSize:        c.Grid.Size,
		FillNumerator:   c.Fill.Numerator,
		FillDenominator: c.Fill.Denominator,
		BagValues:       slices.Clone(c.Bag.Values),
		Bonus: threes.BonusRule{
			Enabled:   c.Bag.Bonus.Enabled,
			Threshold: c.Bag.Bonus.Threshold,
			MinExp:    c.Bag.Bonus.MinRank,
			RankGap:   c.Bag.Bonus.RankOffset,
		},
	}
}

// Preset names a variant by its board size.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetMini    Preset = "mini"
	PresetLarge   Preset = "large"
)

// Presets lists the known presets in menu order.
var Presets = []Preset{PresetClassic, PresetMini, PresetLarge}

// GridSize returns the board size of a preset, 0 when unknown.
func (p Preset) GridSize() int {
	switch p {
	case PresetClassic:
		return 4
	case PresetMini:
		return 3
	case PresetLarge:
		return 5
	default:
		return 0
	}
}

// GameID returns the registry ID of the variant the preset selects.
func (p Preset) GameID() string {
	switch p {
	case PresetMini:
		return threes.IDMini
	case PresetLarge:
		return threes.IDLarge
	default:
		return threes.IDClassic
	}
}

// ParsePreset accepts a preset name; the empty string means classic.
func ParsePreset(s string) (Preset, error) {
	if s == "" {
		return PresetClassic, nil
	}
	p := Preset(s)
	if p.GridSize() == 0 {
		return "", fmt.Errorf("config: unknown preset %q (want classic, mini or large)", s)
	}
	return p, nil
}
