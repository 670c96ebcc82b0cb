package bot

import "holdem/internal/game"

// Weights is an action-indexed table of selection weights. Using a
// fixed array keyed by game.Action makes invalid action keys
// unrepresentable; string keys exist only at the persistence boundary.
// A zero weight excludes the action from the pool entirely.
type Weights [game.NumActions]int

// DefaultWeights is the table used when a bot has none of its own:
// mostly passive, occasionally raising, rarely shoving.
func DefaultWeights() Weights {
	var w Weights
	w[game.Fold] = 1
	w[game.Check] = 4
	w[game.Call] = 3
	w[game.Raise] = 2
	w[game.AllIn] = 1
	return w
}

// WeightsFromMap builds a table from a string-keyed map as stored in
// rosters and config files. Unknown action names and negative weights
// are ignored, leaving the default for that action; a nil map yields
// the default table. Malformed weights are never fatal.
func WeightsFromMap(m map[string]int) Weights {
	w := DefaultWeights()
	for name, weight := range m {
		action, err := game.ParseAction(name)
		if err != nil || weight < 0 {
			continue
		}
		w[action] = weight
	}
	return w
}
