// Package config loads table and bot configuration from HCL files.
// A missing file yields the default configuration rather than an error.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete table configuration
type Config struct {
	Table TableConfig `hcl:"table,block"`
	Bots  []BotConfig `hcl:"bot,block"`
}

// TableConfig defines the stakes and seating for a table
type TableConfig struct {
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	StartingChips int `hcl:"starting_chips,optional"`
	MaxSeats      int `hcl:"max_seats,optional"`
}

// BotConfig defines one seated bot
type BotConfig struct {
	Name        string         `hcl:"name,label"`
	Personality string         `hcl:"personality,optional"`
	Chips       int            `hcl:"chips,optional"`
	Weights     *WeightsConfig `hcl:"weights,block"`
}

// WeightsConfig overrides the default action weights. Pointer fields
// distinguish an explicit zero, which excludes the action, from an
// omitted field, which keeps the default.
type WeightsConfig struct {
	Fold  *int `hcl:"fold,optional"`
	Check *int `hcl:"check,optional"`
	Call  *int `hcl:"call,optional"`
	Raise *int `hcl:"raise,optional"`
	AllIn *int `hcl:"allin,optional"`
}

// ToMap flattens the weight overrides to the string-keyed form used by
// rosters. Omitted fields are not present in the map.
func (w *WeightsConfig) ToMap() map[string]int {
	if w == nil {
		return nil
	}
	m := make(map[string]int)
	put := func(name string, v *int) {
		if v != nil {
			m[name] = *v
		}
	}
	put("fold", w.Fold)
	put("check", w.Check)
	put("call", w.Call)
	put("raise", w.Raise)
	put("allin", w.AllIn)
	return m
}

// Default returns the default configuration: a 5/10 table seating six
// balanced bots with 1000 chips each.
func Default() *Config {
	cfg := &Config{
		Table: TableConfig{
			SmallBlind:    5,
			BigBlind:      10,
			StartingChips: 1000,
			MaxSeats:      9,
		},
	}
	names := []string{"Ada", "Blaise", "Curie", "Dijkstra", "Erdos", "Fermat"}
	for _, name := range names {
		cfg.Bots = append(cfg.Bots, BotConfig{
			Name:        name,
			Personality: "balanced",
			Chips:       1000,
		})
	}
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present but invalid file is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = def.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = def.Table.BigBlind
	}
	if cfg.Table.StartingChips == 0 {
		cfg.Table.StartingChips = def.Table.StartingChips
	}
	if cfg.Table.MaxSeats == 0 {
		cfg.Table.MaxSeats = def.Table.MaxSeats
	}
	if len(cfg.Bots) == 0 {
		cfg.Bots = def.Bots
	}
	for i := range cfg.Bots {
		if cfg.Bots[i].Personality == "" {
			cfg.Bots[i].Personality = "balanced"
		}
		if cfg.Bots[i].Chips == 0 {
			cfg.Bots[i].Chips = cfg.Table.StartingChips
		}
	}
}

// Validate checks the configuration for values the engine cannot run
// with
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind %d must be greater than small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > 10 {
		return fmt.Errorf("max seats must be between 2 and 10, got %d", c.Table.MaxSeats)
	}
	if len(c.Bots) < 2 {
		return fmt.Errorf("at least two bots must be configured, got %d", len(c.Bots))
	}
	if len(c.Bots) > c.Table.MaxSeats {
		return fmt.Errorf("%d bots configured but only %d seats", len(c.Bots), c.Table.MaxSeats)
	}
	seen := make(map[string]bool)
	for _, b := range c.Bots {
		if b.Name == "" {
			return fmt.Errorf("bot name must not be empty")
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate bot name %q", b.Name)
		}
		seen[b.Name] = true
		if b.Chips <= 0 {
			return fmt.Errorf("bot %s: chips must be positive, got %d", b.Name, b.Chips)
		}
	}
	return nil
}
