package game

import "fmt"

// State represents the hand/street state machine
type State int

const (
	StateWaiting State = iota
	StatePreFlop
	StateFlop
	StateTurn
	StateRiver
	StateShowdown
	StateEnded
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePreFlop:
		return "preflop"
	case StateFlop:
		return "flop"
	case StateTurn:
		return "turn"
	case StateRiver:
		return "river"
	case StateShowdown:
		return "showdown"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

// NumActions is the number of distinct actions, for weight tables
// indexed by Action.
const NumActions = 5

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name as used in weight tables and logs.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "allin", "all-in":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
