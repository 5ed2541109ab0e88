package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/pterm/pterm"

	"github.com/lox/holdem-knockout/internal/randutil"
	"github.com/lox/holdem-knockout/internal/simulator"
	"github.com/lox/holdem-knockout/internal/statistics"
)

type CLI struct {
	Sessions int    `default:"1000" help:"Number of sessions to simulate"`
	Players  int    `short:"p" default:"4" help:"Players per session"`
	Chips    int    `default:"100" help:"Starting chips per player"`
	Opponent string `default:"mixed" help:"Bot kind for every seat: call, fold, random or mixed"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	MaxHands int    `default:"10000" help:"Abandon a session after this many hands"`
	Parallel int    `default:"0" help:"Sessions to run at once (0 for one per CPU)"`
	Verbose  bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Play bot-only knockout sessions and report the outcomes"))

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	if cli.Seed == 0 {
		cli.Seed = randutil.Resolve(0)
	}
	if cli.Parallel == 0 {
		cli.Parallel = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Sessions:      cli.Sessions,
		Players:       cli.Players,
		StartingChips: cli.Chips,
		Opponent:      cli.Opponent,
		Seed:          cli.Seed,
		MaxHands:      cli.MaxHands,
		Parallel:      cli.Parallel,
		Logger:        logger,
	})

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Simulating %d sessions of %d players (seed: %d)", cli.Sessions, cli.Players, cli.Seed))
	start := time.Now()
	stats, opponentInfo, err := sim.Run(ctx)
	duration := time.Since(start)
	if err != nil {
		spinner.Fail(err.Error())
		os.Exit(1)
	}
	spinner.Success(fmt.Sprintf("Simulated %d sessions in %s", stats.Sessions, duration.Round(time.Millisecond)))

	printResults(stats, opponentInfo, cli.Seed, duration)
	kctx.Exit(0)
}

func printResults(stats *statistics.Statistics, opponentInfo string, seed int64, duration time.Duration) {
	pterm.DefaultSection.Println("Session length")

	low, high := stats.ConfidenceInterval95()
	pterm.Info.Printfln("Opponents: %s, seed %d", opponentInfo, seed)
	pterm.Info.Printfln("Hands per session: %.1f ± %.1f SE (95%% CI [%.1f, %.1f])", stats.Mean(), stats.StdError(), low, high)
	pterm.Info.Printfln("Median %.0f, p10 %.0f, p90 %.0f, std dev %.1f",
		stats.Median(), stats.Percentile(0.10), stats.Percentile(0.90), stats.StdDev())
	pterm.Info.Printfln("Showdown rate: %.1f%% of %d hands", stats.ShowdownRate()*100, stats.TotalHands)
	pterm.Info.Printfln("Largest pot: %d chips (seed %d)", stats.MaxPot, stats.MaxPotSeed)
	if stats.TotalHands > 0 {
		pterm.Info.Printfln("Throughput: %.0f hands/sec", float64(stats.TotalHands)/duration.Seconds())
	}
	if stats.Unfinished > 0 {
		pterm.Warning.Printfln("%d sessions hit the hand limit without a winner", stats.Unfinished)
	}

	pterm.DefaultSection.Println("Winners")

	data := pterm.TableData{{"Seat", "Wins", "Win rate"}}
	for _, row := range stats.Leaderboard() {
		data = append(data, []string{row.Name, fmt.Sprint(row.Wins), fmt.Sprintf("%.1f%%", stats.WinRate(row.Name)*100)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

