package bot

import "strings"

// Personality tags a bot's temperament. It scales raise sizing and the
// optional thinking delay; action selection comes from the weight table.
type Personality int

const (
	Balanced Personality = iota
	Aggressive
	Passive
	Tight
	Loose
	Reckless
)

// String returns the string representation of a personality
func (p Personality) String() string {
	switch p {
	case Balanced:
		return "balanced"
	case Aggressive:
		return "aggressive"
	case Passive:
		return "passive"
	case Tight:
		return "tight"
	case Loose:
		return "loose"
	case Reckless:
		return "reckless"
	default:
		return "unknown"
	}
}

// ParsePersonality maps a tag to a Personality. Unknown tags fall back
// to Balanced rather than failing: bot configuration is never fatal.
func ParsePersonality(s string) Personality {
	switch strings.ToLower(s) {
	case "aggressive", "loose-aggressive":
		return Aggressive
	case "passive":
		return Passive
	case "tight", "tight-aggressive":
		return Tight
	case "loose":
		return Loose
	case "reckless", "careless":
		return Reckless
	default:
		return Balanced
	}
}

// raiseInterval returns the [lo, hi) multiplier range applied to the
// chips left after covering the call when sizing a raise.
func (p Personality) raiseInterval() (lo, hi float64) {
	switch p {
	case Aggressive:
		return 0.7, 1.0
	case Passive:
		return 0.2, 0.5
	case Tight:
		return 0.4, 0.7
	case Loose:
		return 0.5, 0.8
	case Reckless:
		return 0.8, 1.2 // can shove beyond the stack; clamped later
	default:
		return 0.4, 0.8
	}
}

// delayFactor scales the thinking delay: snap decisions for aggressive
// temperaments, deliberation for careful ones.
func (p Personality) delayFactor() float64 {
	switch p {
	case Aggressive, Reckless:
		return 0.7
	case Passive, Tight:
		return 1.3
	default:
		return 1.0
	}
}
