package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"holdem/internal/bot"
	"holdem/internal/config"
	"holdem/internal/game"
	"holdem/internal/randutil"
	"holdem/internal/sim"
)

type CLI struct {
	Hands   int    `default:"10000" help:"Total number of hands to simulate"`
	Workers int    `default:"0" help:"Parallel tables (0 for GOMAXPROCS)"`
	Config  string `short:"c" default:"table.hcl" help:"Table configuration file (HCL)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}
	if cli.Workers <= 0 {
		cli.Workers = runtime.GOMAXPROCS(0)
	}

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("loading config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "error", err)
	}

	fmt.Printf("Simulating %d hands across %d tables (seed: %d)\n", cli.Hands, cli.Workers, cli.Seed)

	start := time.Now()
	stats, err := runParallel(context.Background(), cli, cfg, logger)
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}
	printResults(stats, time.Since(start))

	kctx.Exit(0)
}

// runParallel plays the requested hands on independent tables, one per
// worker, each with its own engine, players and seeded RNG. Workers
// share nothing, so results merge without locking.
func runParallel(ctx context.Context, cli CLI, cfg *config.Config, logger *log.Logger) (*sim.Statistics, error) {
	perWorker := cli.Hands / cli.Workers
	extra := cli.Hands % cli.Workers

	results := make([]*sim.Statistics, cli.Workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < cli.Workers; w++ {
		hands := perWorker
		if w < extra {
			hands++
		}
		if hands == 0 {
			continue
		}

		g.Go(func() (err error) {
			rng := randutil.New(cli.Seed + int64(w))
			runner := sim.New(newTable(cfg, rng, logger), sim.WithLogger(logger))
			results[w], err = runner.Run(ctx, hands)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := sim.NewStatistics()
	for _, r := range results {
		if r != nil {
			merged.Merge(r)
		}
	}
	return merged, nil
}

// newTable builds one engine from the configuration. Worker tables get
// fresh players; IDs only need to be unique within a table, so bot
// names serve as IDs and per-player results merge by name across
// workers.
func newTable(cfg *config.Config, rng *rand.Rand, logger *log.Logger) *game.Engine {
	var players []*game.Player
	for _, b := range cfg.Bots {
		p := game.NewPlayer(b.Name, b.Name, b.Chips)
		profile := bot.Profile{
			Personality: bot.ParsePersonality(b.Personality),
			Weights:     bot.WeightsFromMap(b.Weights.ToMap()),
		}
		p.Decider = bot.New(profile, rng)
		players = append(players, p)
	}
	return game.New(rng,
		game.Config{SmallBlind: cfg.Table.SmallBlind, BigBlind: cfg.Table.BigBlind},
		players,
		game.WithLogger(logger),
	)
}

func printResults(stats *sim.Statistics, elapsed time.Duration) {
	handsPerSec := float64(stats.Hands) / elapsed.Seconds()

	fmt.Printf("\n=== RESULTS ===\n")
	fmt.Printf("Hands played: %d in %v (%.0f hands/sec)\n", stats.Hands, elapsed.Round(time.Millisecond), handsPerSec)
	fmt.Printf("Showdowns: %d (%.1f%%), folded out: %d\n",
		stats.Showdowns, float64(stats.Showdowns)/float64(stats.Hands)*100, stats.EarlyWins)
	fmt.Printf("Biggest pot: %d chips\n", stats.MaxPot)

	fmt.Printf("\n=== LEADERBOARD ===\n")
	for i, ps := range stats.Leaderboard() {
		fmt.Printf("%d. %-12s %+8d chips  %d/%d hands won\n", i+1, ps.Name, ps.Net, ps.Wins, ps.Hands)
	}
}
