package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/deck"
	"github.com/lox/holdem-knockout/internal/gameid"
	"github.com/lox/holdem-knockout/internal/randutil"
)

// DefaultStartingChips is the stack every player starts with unless configured
const DefaultStartingChips = 100

// SessionConfig describes the players and limits of a session
type SessionConfig struct {
	PlayerNames   []string
	StartingChips int
	Seed          int64 // 0 picks a time-based seed
	MaxHands      int   // 0 means play until one player holds every chip
	MaxRetries    int   // 0 means re-prompt forever
}

// Validate checks the configuration can start a session
func (c SessionConfig) Validate() error {
	if len(c.PlayerNames) < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfiguration, len(c.PlayerNames))
	}
	if c.StartingChips <= 0 {
		return fmt.Errorf("%w: starting chips must be positive, got %d", ErrInvalidConfiguration, c.StartingChips)
	}
	if c.MaxHands < 0 || c.MaxRetries < 0 {
		return fmt.Errorf("%w: limits cannot be negative", ErrInvalidConfiguration)
	}

	seen := make(map[string]bool, len(c.PlayerNames))
	for _, name := range c.PlayerNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: player name cannot be blank", ErrInvalidConfiguration)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfiguration, name)
		}
		seen[name] = true
	}
	return nil
}

// SessionResult summarises a finished (or interrupted) session
type SessionResult struct {
	SessionID string
	Seed      int64
	Winner    string // empty when the session stopped before a single player held every chip
	Hands     int
	Standings []PlayerState
}

// SessionOption configures a Session
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	newDeck  DeckFactory
	eventBus EventBus
}

// WithDeckFactory replaces the seeded shuffled deck, typically with stacked
// decks in tests
func WithDeckFactory(f DeckFactory) SessionOption {
	return func(o *sessionOptions) { o.newDeck = f }
}

// WithSessionEventBus publishes session and engine events on bus
func WithSessionEventBus(bus EventBus) SessionOption {
	return func(o *sessionOptions) { o.eventBus = bus }
}

// Session owns the table, engine and agents for one elimination game
type Session struct {
	id       string
	config   SessionConfig
	seed     int64
	table    *Table
	engine   *Engine
	eventBus EventBus
	logger   *log.Logger
}

// NewSession seats cfg.PlayerNames in order and binds each to its agent.
// It fails with ErrInvalidConfiguration before any hand is played.
func NewSession(cfg SessionConfig, eval HandEvaluator, agents map[string]Agent, logger *log.Logger, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, name := range cfg.PlayerNames {
		if agents[name] == nil {
			return nil, fmt.Errorf("%w: no agent for player %q", ErrInvalidConfiguration, name)
		}
	}

	seed := randutil.Resolve(cfg.Seed)
	o := sessionOptions{eventBus: NewEventBus()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newDeck == nil {
		rng := randutil.New(seed)
		o.newDeck = func() CardSource { return deck.NewDeck(rng) }
	}

	table := NewTable(o.newDeck)
	for _, name := range cfg.PlayerNames {
		if err := table.SeatPlayer(NewPlayer(name, cfg.StartingChips)); err != nil {
			return nil, err
		}
	}

	ids := gameid.NewGenerator(nil)
	engine := NewGameEngine(table, eval, logger,
		WithMaxRetries(cfg.MaxRetries),
		WithEventBus(o.eventBus),
		WithIDGenerator(ids))
	for _, name := range cfg.PlayerNames {
		engine.AddAgent(name, agents[name])
	}

	id := ids.Generate()
	return &Session{
		id:       id,
		config:   cfg,
		seed:     seed,
		table:    table,
		engine:   engine,
		eventBus: o.eventBus,
		logger:   logger.WithPrefix("session").With("session", id),
	}, nil
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Seed returns the seed the default deck was shuffled from
func (s *Session) Seed() int64 { return s.seed }

// Table returns the session's table
func (s *Session) Table() *Table { return s.table }

// EventBus returns the bus session events are published on
func (s *Session) EventBus() EventBus { return s.eventBus }

// Run plays hands while more than one player has chips. The context is
// checked between hands; a hand in progress always runs to completion.
// The returned result is non-nil even when an error is returned.
func (s *Session) Run(ctx context.Context) (*SessionResult, error) {
	s.logger.Info("Starting session",
		"players", len(s.table.Players()),
		"chips", s.config.StartingChips,
		"seed", s.seed)

	for len(s.table.PlayersWithChips()) > 1 {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Session interrupted", "hands", s.engine.HandNumber())
			return s.result(), err
		}
		if s.config.MaxHands > 0 && s.engine.HandNumber() >= s.config.MaxHands {
			s.logger.Warn("Hand limit reached", "hands", s.engine.HandNumber())
			return s.result(), fmt.Errorf("%w: %d hands", ErrHandLimit, s.config.MaxHands)
		}
		if _, err := s.engine.PlayHand(); err != nil {
			return s.result(), fmt.Errorf("hand %d: %w", s.engine.HandNumber(), err)
		}
	}

	result := s.result()
	s.logger.Info("Session complete", "winner", result.Winner, "hands", result.Hands)
	s.eventBus.Publish(NewSessionEndEvent(*result))
	return result, nil
}

func (s *Session) result() *SessionResult {
	r := &SessionResult{
		SessionID: s.id,
		Seed:      s.seed,
		Hands:     s.engine.HandNumber(),
		Standings: s.table.State(nil).Players,
	}
	if remaining := s.table.PlayersWithChips(); len(remaining) == 1 {
		r.Winner = remaining[0].Name
	}
	return r
}
