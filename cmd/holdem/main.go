package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"

	"github.com/lox/holdem-knockout/internal/config"
	"github.com/lox/holdem-knockout/internal/console"
	"github.com/lox/holdem-knockout/internal/evaluator"
	"github.com/lox/holdem-knockout/internal/game"
	"github.com/lox/holdem-knockout/internal/phh"
	"github.com/lox/holdem-knockout/internal/randutil"
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Bold(true)
)

type CLI struct {
	Config   string   `short:"c" help:"HCL configuration file" default:"holdem.hcl" env:"HOLDEM_CONFIG" type:"path"`
	Player   []string `short:"p" help:"Seat a player as name=agent (human, script, call, fold, random); replaces the configured players" placeholder:"NAME=AGENT"`
	Chips    int      `help:"Starting chips per player" env:"HOLDEM_CHIPS"`
	Seed     int64    `help:"Deck seed (0 for random)" env:"HOLDEM_SEED"`
	MaxHands int      `help:"Stop after this many hands (0 for no limit)" env:"HOLDEM_MAX_HANDS"`
	Pause    string   `help:"Delay between phases, e.g. 500ms" env:"HOLDEM_PAUSE"`
	NoClear  bool     `help:"Do not clear the screen between hands"`
	LogFile  string   `help:"Write logs to this file" env:"HOLDEM_LOG_FILE"`
	LogLevel string   `help:"Log level (debug, info, warn, error)" env:"HOLDEM_LOG_LEVEL"`
	History  string   `help:"Write a PHH hand history per hand under this directory" env:"HOLDEM_HISTORY_DIR" type:"path"`
}

func main() {
	// A .env file is optional
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Elimination Texas Hold'em in the terminal"))

	cfg, err := loadConfig(&cli)
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	releaseOnInterrupt(ctx, stop)

	if err := run(ctx, cfg); err != nil {
		log.Fatal("Game failed", "error", err)
	}

	kctx.Exit(0)
}

// releaseOnInterrupt restores default signal handling once ctx is done.
// The first interrupt lets the current hand finish; a second one exits even
// while a prompt is waiting for input.
func releaseOnInterrupt(ctx context.Context, stop context.CancelFunc) {
	go func() {
		<-ctx.Done()
		stop()
	}()
}

// loadConfig reads the configuration file and layers command line flags on top
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}

	if len(cli.Player) > 0 {
		cfg.Players = cfg.Players[:0]
		for _, seat := range cli.Player {
			name, agent, _ := strings.Cut(seat, "=")
			if agent == "" {
				agent = config.AgentHuman
			}
			cfg.Players = append(cfg.Players, config.PlayerConfig{
				Name:  strings.TrimSpace(name),
				Agent: strings.ToLower(strings.TrimSpace(agent)),
			})
		}
	}
	if cli.Chips != 0 {
		cfg.Session.StartingChips = cli.Chips
	}
	if cli.Seed != 0 {
		cfg.Session.Seed = cli.Seed
	}
	if cli.MaxHands != 0 {
		cfg.Session.MaxHands = cli.MaxHands
	}
	if cli.Pause != "" {
		cfg.Display.Pause = cli.Pause
	}
	if cli.NoClear {
		off := false
		cfg.Display.ClearScreen = &off
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.History != "" {
		cfg.History.Dir = cli.History
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	// Logs go to a file so they never interleave with the table
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "HOLDEM",
		Level:           cfg.LogLevel(),
	})

	theme := console.NewTheme(os.Stdout)
	pacer := console.NewPacer(quartz.NewReal(), cfg.PauseDuration())
	defer pacer.Stop()
	go func() {
		<-ctx.Done()
		pacer.Stop()
	}()

	fmt.Fprintln(theme.Writer(), titleStyle.Render(" ♠ ♥ Texas Hold'em Knockout ♦ ♣ "))
	fmt.Fprintln(theme.Writer())

	sessionCfg := cfg.SessionConfig()
	sessionCfg.Seed = randutil.Resolve(sessionCfg.Seed)

	// Every human seat shares the terminal
	human := console.NewHumanAgent(os.Stdin, theme)
	agents, err := cfg.Agents(sessionCfg.Seed, func(string) game.Agent { return human }, logger)
	if err != nil {
		return err
	}

	bus := game.NewEventBus()
	bus.Subscribe(console.NewRenderer(theme, pacer, cfg.ClearScreen() && cfg.HasHumans()))

	session, err := game.NewSession(sessionCfg, evaluator.New(), agents, logger, game.WithSessionEventBus(bus))
	if err != nil {
		return err
	}
	logger.Info("Session created", "id", session.ID(), "seed", session.Seed())

	var recorder *phh.Recorder
	if cfg.History.Dir != "" {
		recorder = phh.NewRecorder(filepath.Join(cfg.History.Dir, session.ID()), session.ID(), logger)
		bus.Subscribe(recorder)
	}

	result, err := session.Run(ctx)
	if recorder != nil {
		if herr := recorder.Err(); herr != nil {
			fmt.Fprintln(theme.Writer(), theme.Error.Render(fmt.Sprintf("Some hand histories could not be written: %v", herr)))
		} else if n := len(recorder.Written()); n > 0 {
			fmt.Fprintln(theme.Writer(), theme.Muted.Render(fmt.Sprintf("Wrote %d hand histories to %s", n, filepath.Dir(recorder.Written()[0]))))
		}
	}
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(theme.Writer(), theme.Warning.Render(fmt.Sprintf("Game interrupted after %d hands", result.Hands)))
		return nil
	case errors.Is(err, game.ErrHandLimit):
		fmt.Fprintln(theme.Writer(), theme.Warning.Render(fmt.Sprintf("Hand limit reached after %d hands", result.Hands)))
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(theme.Writer(), theme.Muted.Render(fmt.Sprintf("Replay this game with --seed %d", result.Seed)))
	return nil
}
