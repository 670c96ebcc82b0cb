package sim

import (
	"fmt"
	"sort"
)

// HandResult is the outcome of one simulated hand
type HandResult struct {
	HandID        string
	Showdown      bool // false when everyone else folded
	PotSize       int  // total chips contested
	StreetReached string
	Net           map[string]int // chip delta per player ID
}

// PlayerStats accumulates per-player results across a run
type PlayerStats struct {
	Name      string
	Hands     int
	Wins      int
	Showdowns int
	Net       int
}

// Statistics accumulates results for a whole simulation run
type Statistics struct {
	Hands     int
	Showdowns int
	EarlyWins int // hands ended by everyone else folding
	MaxPot    int
	Players   map[string]*PlayerStats
}

// NewStatistics returns an empty statistics accumulator
func NewStatistics() *Statistics {
	return &Statistics{Players: make(map[string]*PlayerStats)}
}

// Add incorporates one hand result
func (s *Statistics) Add(result HandResult, names map[string]string) {
	s.Hands++
	if result.Showdown {
		s.Showdowns++
	} else {
		s.EarlyWins++
	}
	if result.PotSize > s.MaxPot {
		s.MaxPot = result.PotSize
	}

	for id, net := range result.Net {
		ps := s.Players[id]
		if ps == nil {
			ps = &PlayerStats{Name: names[id]}
			s.Players[id] = ps
		}
		ps.Hands++
		ps.Net += net
		if net > 0 {
			ps.Wins++
		}
		if result.Showdown {
			ps.Showdowns++
		}
	}
}

// Validate checks the accounting: chips only move between players, so
// per-hand deltas must sum to zero across the table.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("no hands recorded")
	}
	total := 0
	for _, ps := range s.Players {
		total += ps.Net
	}
	if total != 0 {
		return fmt.Errorf("chip ledger out of balance by %d", total)
	}
	return nil
}

// Leaderboard returns per-player stats ordered by net winnings, ties
// broken by name for stable output.
func (s *Statistics) Leaderboard() []*PlayerStats {
	out := make([]*PlayerStats, 0, len(s.Players))
	for _, ps := range s.Players {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Net != out[j].Net {
			return out[i].Net > out[j].Net
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Merge folds other into s. Used to combine per-worker statistics
// after a parallel run.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Showdowns += other.Showdowns
	s.EarlyWins += other.EarlyWins
	if other.MaxPot > s.MaxPot {
		s.MaxPot = other.MaxPot
	}
	for id, ops := range other.Players {
		ps := s.Players[id]
		if ps == nil {
			ps = &PlayerStats{Name: ops.Name}
			s.Players[id] = ps
		}
		ps.Hands += ops.Hands
		ps.Wins += ops.Wins
		ps.Showdowns += ops.Showdowns
		ps.Net += ops.Net
	}
}
