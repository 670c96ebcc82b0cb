package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"holdem/internal/bot"
	"holdem/internal/config"
	"holdem/internal/deck"
	"holdem/internal/game"
	"holdem/internal/randutil"
	"holdem/internal/roster"
	"holdem/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	streetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	potStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	winnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
)

type CLI struct {
	Config  string `short:"c" default:"table.hcl" help:"Table configuration file (HCL)"`
	Roster  string `short:"r" default:"roster.json" help:"Roster file persisting chips between sessions"`
	Hands   int    `short:"n" default:"10" help:"Number of hands to play"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Fast    bool   `help:"Skip bot thinking delays"`
	Verbose bool   `short:"v" help:"Verbose logging to stderr"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	fmt.Print(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	if err := run(cli, logger); err != nil {
		logger.Fatal("game failed", "error", err)
	}
	kctx.Exit(0)
}

func run(cli CLI, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	r, err := roster.Load(cli.Roster)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	if r == nil {
		r = roster.FromConfig(cfg)
		logger.Info("created roster from config", "bots", len(r.Entries))
	}
	if len(r.Funded()) < 2 {
		return fmt.Errorf("fewer than two funded players in %s", cli.Roster)
	}

	rng := randutil.New(cli.Seed)
	logger.Info("seeding table", "seed", cli.Seed, "players", len(r.Entries))

	var players []*game.Player
	for _, entry := range r.Entries {
		p := game.NewPlayer(entry.ID, entry.Name, entry.Chips)
		policy := bot.New(entry.Profile(), rng)
		if cli.Fast {
			p.Decider = policy
		} else {
			p.Decider = &pacedDecider{ctx: ctx, policy: policy}
		}
		players = append(players, p)
	}

	engine := game.New(rng,
		game.Config{SmallBlind: cfg.Table.SmallBlind, BigBlind: cfg.Table.BigBlind},
		players,
		game.WithLogger(logger),
		game.WithObserver(&consoleObserver{}),
	)

	runner := sim.New(engine, sim.WithLogger(logger))
	stats, err := runner.Run(ctx, cli.Hands)
	if err != nil && err != context.Canceled {
		return err
	}

	chips := make(map[string]int, len(players))
	for _, p := range players {
		chips[p.ID] = p.Chips
	}
	r.UpdateChips(chips)
	if err := r.Save(cli.Roster); err != nil {
		return err
	}
	logger.Info("roster saved", "path", cli.Roster)

	printStandings(stats)
	return nil
}

// pacedDecider wraps a bot policy with its thinking delay so the
// console output reads at a human pace.
type pacedDecider struct {
	ctx    context.Context
	policy *bot.Policy
}

func (d *pacedDecider) Decide(snap game.Snapshot, self game.PlayerView, valid []game.Action) (game.Action, int) {
	if err := d.policy.Think(d.ctx); err != nil {
		return game.Fold, 0
	}
	return d.policy.Decide(snap, self, valid)
}

// consoleObserver renders engine events to stdout
type consoleObserver struct{}

func (o *consoleObserver) StateChanged(state game.State, snap game.Snapshot) {
	switch state {
	case game.StatePreFlop:
		fmt.Println()
		fmt.Println(streetStyle.Render(fmt.Sprintf("=== Hand %d ===", snap.HandNumber)))
		fmt.Printf("dealer: %s\n", snap.Players[snap.Dealer].Name)
	case game.StateFlop, game.StateTurn, game.StateRiver:
		fmt.Printf("%s  %s\n", streetStyle.Render(strings.ToUpper(state.String())), renderCards(snap.Community))
	case game.StateShowdown:
		fmt.Println(streetStyle.Render("SHOWDOWN"))
		for _, p := range snap.Players {
			if p.Status != game.StatusFolded && p.Status != game.StatusOut {
				fmt.Printf("  %s shows %s\n", p.Name, renderCards(p.HoleCards))
			}
		}
	case game.StateEnded:
		for _, p := range snap.Players {
			fmt.Printf("  %s: %s\n", p.Name, potStyle.Render(fmt.Sprintf("%d chips", p.Chips)))
		}
	}
}

func (o *consoleObserver) PlayerActed(player game.PlayerView, action game.Action, amount int) {
	switch action {
	case game.Raise:
		fmt.Printf("  %s raises %d\n", player.Name, amount)
	case game.AllIn:
		fmt.Printf("  %s is %s\n", player.Name, winnerStyle.Render("all in"))
	default:
		fmt.Printf("  %s %ss\n", player.Name, action)
	}
}

func (o *consoleObserver) PotChanged(pot int) {}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Suit.IsRed() {
			parts[i] = redCardStyle.Render(c.String())
		} else {
			parts[i] = blackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

func printStandings(stats *sim.Statistics) {
	fmt.Println()
	fmt.Println(titleStyle.Render(" Standings "))
	fmt.Printf("hands: %d  showdowns: %d  biggest pot: %d\n", stats.Hands, stats.Showdowns, stats.MaxPot)
	for i, ps := range stats.Leaderboard() {
		line := fmt.Sprintf("%d. %-12s net %+d over %d hands (%d won)", i+1, ps.Name, ps.Net, ps.Hands, ps.Wins)
		if i == 0 {
			line = winnerStyle.Render(line)
		}
		fmt.Println(line)
	}
}
