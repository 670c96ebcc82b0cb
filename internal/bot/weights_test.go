package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem/internal/game"
)

func TestWeightsFromMapNilYieldsDefaults(t *testing.T) {
	assert.Equal(t, DefaultWeights(), WeightsFromMap(nil))
}

func TestWeightsFromMapKeepsExplicitZero(t *testing.T) {
	w := WeightsFromMap(map[string]int{"fold": 0, "raise": 7})
	assert.Equal(t, 0, w[game.Fold])
	assert.Equal(t, 7, w[game.Raise])
	assert.Equal(t, DefaultWeights()[game.Check], w[game.Check])
}

func TestWeightsFromMapIgnoresMalformedEntries(t *testing.T) {
	w := WeightsFromMap(map[string]int{
		"bluff": 99, // unknown action
		"call":  -5, // negative weight
		"check": 2,
	})
	assert.Equal(t, DefaultWeights()[game.Call], w[game.Call])
	assert.Equal(t, 2, w[game.Check])
}

func TestParsePersonality(t *testing.T) {
	tests := []struct {
		in   string
		want Personality
	}{
		{"aggressive", Aggressive},
		{"loose-aggressive", Aggressive},
		{"Passive", Passive},
		{"tight", Tight},
		{"tight-aggressive", Tight},
		{"loose", Loose},
		{"reckless", Reckless},
		{"careless", Reckless},
		{"balanced", Balanced},
		{"", Balanced},
		{"nonsense", Balanced},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePersonality(tt.in), tt.in)
	}
}

func TestPersonalityString(t *testing.T) {
	for _, p := range []Personality{Balanced, Aggressive, Passive, Tight, Loose, Reckless} {
		assert.Equal(t, p, ParsePersonality(p.String()))
	}
}
