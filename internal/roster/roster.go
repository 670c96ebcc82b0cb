// Package roster persists table participants between sessions as a
// JSON file: each entry carries identity, a chip count, and the bot
// profile used to rebuild its policy.
package roster

import (
	"encoding/json"
	"fmt"
	mathrand "math/rand"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"holdem/internal/bot"
	"holdem/internal/config"
	"holdem/internal/fileutil"
)

var (
	idEntropy   = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	idEntropyMu sync.Mutex
)

func newID() string {
	idEntropyMu.Lock()
	defer idEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}

// Entry is one persisted participant. Weights use string keys on disk
// so the file stays readable and editable by hand.
type Entry struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Chips       int            `json:"chips"`
	Personality string         `json:"personality"`
	Weights     map[string]int `json:"weights,omitempty"`
}

// Profile rebuilds the bot profile from the persisted fields.
// Unrecognized personalities and malformed weights degrade to the
// defaults rather than failing the load.
func (e Entry) Profile() bot.Profile {
	return bot.Profile{
		Personality: bot.ParsePersonality(e.Personality),
		Weights:     bot.WeightsFromMap(e.Weights),
	}
}

// Roster is the set of persisted participants in seat order
type Roster struct {
	Entries []Entry `json:"players"`
}

// FromConfig builds a fresh roster from table configuration, minting
// an ID for every bot.
func FromConfig(cfg *config.Config) *Roster {
	r := &Roster{}
	for _, b := range cfg.Bots {
		r.Entries = append(r.Entries, Entry{
			ID:          newID(),
			Name:        b.Name,
			Chips:       b.Chips,
			Personality: b.Personality,
			Weights:     b.Weights.ToMap(),
		})
	}
	return r
}

// Load reads a roster from path. A missing file returns nil without
// error so the caller can fall back to configuration; entries missing
// an ID are assigned one.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	var r Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	for i := range r.Entries {
		if r.Entries[i].ID == "" {
			r.Entries[i].ID = newID()
		}
	}
	return &r, nil
}

// Save writes the roster to path atomically
func (r *Roster) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing roster %s: %w", path, err)
	}
	return nil
}

// UpdateChips records the chip counts after play, matched by ID
func (r *Roster) UpdateChips(chips map[string]int) {
	for i := range r.Entries {
		if c, ok := chips[r.Entries[i].ID]; ok {
			r.Entries[i].Chips = c
		}
	}
}

// Funded returns the entries that can still post a bet
func (r *Roster) Funded() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Chips > 0 {
			out = append(out, e)
		}
	}
	return out
}
