package config

import (
	_ "embed"
	"slices"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
)

//go:embed defaults/threes.yaml
var defaultThreesYAML []byte

// DefaultThreesConfig returns the classic 4×4 configuration.
func DefaultThreesConfig() ThreesConfig {
	return ThreesConfig{
		Grid: GridConfig{Size: 4},
		Fill: FillConfig{
			Numerator:   9,
			Denominator: 16,
		},
		Bag: BagConfig{
			Values: slices.Clone(threes.DefaultBagValues),
			Bonus: BonusConfig{
				Enabled:    threes.DefaultBonusRule.Enabled,
				Threshold:  threes.DefaultBonusRule.Threshold,
				MinRank:    threes.DefaultBonusRule.MinExp,
				RankOffset: threes.DefaultBonusRule.RankGap,
			},
		},
		Scores: ScoresConfig{
			TopN:       10,
			MaxNameLen: 16,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return slices.Clone(defaultThreesYAML)
}
