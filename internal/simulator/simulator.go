// Package simulator plays batches of bot-only sessions in parallel and
// aggregates their outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-knockout/internal/bot"
	"github.com/lox/holdem-knockout/internal/evaluator"
	"github.com/lox/holdem-knockout/internal/game"
	"github.com/lox/holdem-knockout/internal/randutil"
	"github.com/lox/holdem-knockout/internal/statistics"
)

// mixedOpponents is the rotation used for the "mixed" opponent type
var mixedOpponents = []string{"call", "random"}

// Config holds configuration for running simulations
type Config struct {
	Sessions      int
	Players       int
	StartingChips int
	Opponent      string // a bot kind, or "mixed"
	Seed          int64
	MaxHands      int // per session; 0 means unlimited
	Parallel      int // concurrent sessions; 0 means one per CPU
	Logger        *log.Logger
}

// Simulator runs batches of sessions
type Simulator struct {
	config    Config
	evaluator game.HandEvaluator
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, evaluator: evaluator.New()}
}

// Validate checks the configuration before any session starts
func (c Config) Validate() error {
	if c.Sessions <= 0 {
		return fmt.Errorf("%w: sessions must be positive", game.ErrInvalidConfiguration)
	}
	if c.Opponent != "mixed" {
		if _, err := bot.New(c.Opponent, 0, log.New(io.Discard)); err != nil {
			return fmt.Errorf("%w: %v", game.ErrInvalidConfiguration, err)
		}
	}
	return c.sessionConfig(0).Validate()
}

// Run executes the batch and returns the aggregated statistics along with a
// description of the opponents. Sessions share nothing and run in parallel;
// outcomes are aggregated in session order so a seed always reproduces the
// same report.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, string, error) {
	if err := s.config.Validate(); err != nil {
		return nil, "", err
	}

	opponentInfo := s.config.Opponent
	if s.config.Opponent == "mixed" {
		opponentInfo = fmt.Sprintf("mixed(%s)", strings.Join(mixedOpponents, ","))
	}

	base := randutil.Resolve(s.config.Seed)
	outcomes := make([]statistics.SessionOutcome, s.config.Sessions)

	g, gctx := errgroup.WithContext(ctx)
	if s.config.Parallel > 0 {
		g.SetLimit(s.config.Parallel)
	}
	for i := range outcomes {
		g.Go(func() error {
			outcome, err := s.playSession(gctx, randutil.Derive(base, i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i+1, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	stats := &statistics.Statistics{}
	for _, o := range outcomes {
		stats.Add(o)
	}
	if err := stats.Validate(); err != nil {
		return nil, "", fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, opponentInfo, nil
}

func (c Config) sessionConfig(seed int64) game.SessionConfig {
	names := make([]string, c.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Bot%d", i+1)
	}
	return game.SessionConfig{
		PlayerNames:   names,
		StartingChips: c.StartingChips,
		Seed:          seed,
		MaxHands:      c.MaxHands,
		MaxRetries:    3,
	}
}

// playSession runs one session to completion or its hand limit
func (s *Simulator) playSession(ctx context.Context, seed int64) (statistics.SessionOutcome, error) {
	cfg := s.config.sessionConfig(seed)
	logger := s.config.Logger.With("seed", seed)

	agents := make(map[string]game.Agent, len(cfg.PlayerNames))
	for i, name := range cfg.PlayerNames {
		kind := s.config.Opponent
		if kind == "mixed" {
			kind = mixedOpponents[i%len(mixedOpponents)]
		}
		agent, err := bot.New(kind, randutil.Derive(seed, i), logger)
		if err != nil {
			return statistics.SessionOutcome{}, err
		}
		agents[name] = agent
	}

	tracker := &tracker{}
	bus := game.NewEventBus()
	bus.Subscribe(tracker)

	session, err := game.NewSession(cfg, s.evaluator, agents, logger, game.WithSessionEventBus(bus))
	if err != nil {
		return statistics.SessionOutcome{}, err
	}

	result, err := session.Run(ctx)
	if err != nil && !errors.Is(err, game.ErrHandLimit) {
		return statistics.SessionOutcome{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	if err != nil {
		logger.Warn("Session stopped at hand limit", "hands", result.Hands)
	}

	return statistics.SessionOutcome{
		Seed:       seed,
		Winner:     result.Winner,
		Hands:      result.Hands,
		Showdowns:  tracker.showdowns,
		LargestPot: tracker.largestPot,
	}, nil
}

// tracker records per-hand figures the session result does not carry
type tracker struct {
	showdowns  int
	largestPot int
}

func (t *tracker) OnEvent(event game.GameEvent) {
	e, ok := event.(game.HandEndEvent)
	if !ok {
		return
	}
	if e.Result.Showdown {
		t.showdowns++
	}
	t.largestPot = max(t.largestPot, e.Result.Pot)
}
