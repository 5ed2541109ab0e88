package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/deck"
	"github.com/lox/holdem-knockout/internal/evaluator"
	"github.com/lox/holdem-knockout/internal/gameid"
)

// HandEvaluator ranks a contender's hole cards against the board
type HandEvaluator interface {
	Evaluate(community, hole []deck.Card) (evaluator.Strength, error)
	Classify(s evaluator.Strength) string
}

// HandResult contains the outcome of a completed hand
type HandResult struct {
	HandID     string
	HandNumber int
	Winner     string
	HandClass  string
	Pot        int
	Showdown   bool     // true when more than one player reached the showdown
	Contenders []string // players evaluated at showdown, in seating order
	Board      []deck.Card
	Shown      []ShownHand // empty unless the hand was contested at showdown
}

// ShownHand is a player's hole cards revealed at a contested showdown
type ShownHand struct {
	Name      string
	HoleCards []deck.Card
	HandClass string
}

// String returns a one-line summary such as "Alice won 40 chips with Flush"
func (r HandResult) String() string {
	return fmt.Sprintf("%s won %d chips with %s", r.Winner, r.Pot, r.HandClass)
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithMaxRetries folds a player after n consecutive rejected decisions.
// Zero, the default, asks again forever.
func WithMaxRetries(n int) EngineOption {
	return func(e *Engine) { e.maxRetries = n }
}

// WithEventBus publishes engine events on bus
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.eventBus = bus }
}

// WithIDGenerator sets the generator used for hand IDs
func WithIDGenerator(g *gameid.Generator) EngineOption {
	return func(e *Engine) { e.ids = g }
}

// Engine plays hands on a table: deal, three betting phases, showdown and
// payout. It is the only writer of table state during a hand.
type Engine struct {
	table             *Table
	evaluator         HandEvaluator
	agents            map[string]Agent
	logger            *log.Logger
	eventBus          EventBus
	ids               *gameid.Generator
	maxRetries        int
	handNumber        int
	startingChipTotal int
	lastResult        *HandResult
}

// NewGameEngine creates an engine for table. Seat every player before
// creating the engine so the chip total can be recorded.
func NewGameEngine(table *Table, eval HandEvaluator, logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		table:             table,
		evaluator:         eval,
		agents:            make(map[string]Agent),
		logger:            logger.WithPrefix("engine"),
		eventBus:          NewEventBus(),
		ids:               gameid.NewGenerator(nil),
		startingChipTotal: table.TotalChips(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddAgent registers the agent deciding for the named player
func (e *Engine) AddAgent(playerName string, agent Agent) {
	e.agents[playerName] = agent
}

// EventBus returns the bus engine events are published on
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// Table returns the table the engine plays on
func (e *Engine) Table() *Table {
	return e.table
}

// HandNumber returns the number of hands started so far
func (e *Engine) HandNumber() int {
	return e.handNumber
}

// LastResult returns the previous hand's result, or nil before the first
// hand completes
func (e *Engine) LastResult() *HandResult {
	return e.lastResult
}

// PlayHand runs one complete hand and returns its result
func (e *Engine) PlayHand() (*HandResult, error) {
	if len(e.table.PlayersWithChips()) < 2 {
		return nil, fmt.Errorf("%w: need at least two players with chips", ErrInvalidConfiguration)
	}
	for _, p := range e.table.PlayersWithChips() {
		if e.agents[p.Name] == nil {
			return nil, fmt.Errorf("%w: no agent for %s", ErrInvalidConfiguration, p.Name)
		}
	}

	e.handNumber++
	handID := e.ids.Generate()
	logger := e.logger.With("hand", e.handNumber)

	e.table.ResetForNewHand()
	mustDeal(e.table.DealHoleCards())
	logger.Debug("Dealt hole cards", "handID", handID, "players", len(e.table.PlayersWithChips()))
	e.eventBus.Publish(NewHandStartEvent(handID, e.handNumber, e.table.State(nil).Players, e.lastResult))

	for _, phase := range BettingPhases {
		mustDeal(e.table.AdvancePhase(phase))

		wager := e.table.ContenderCount() >= 2
		logger.Debug("Dealt phase", "phase", phase, "board", deck.FormatCards(e.table.CommunityCards()), "wager", wager)
		e.eventBus.Publish(NewPhaseEvent(phase, e.table.CommunityCards(), e.table.Pot(), e.table.State(nil).Players, wager))

		if !wager {
			continue
		}
		round := NewWageringRound(e.table, phase, logger)
		round.maxRetries = e.maxRetries
		round.eventBus = e.eventBus
		round.handNumber = e.handNumber
		round.previous = e.lastResult
		round.Run(e.agentFor)
	}

	result, err := e.showdown(handID)
	if err != nil {
		return nil, err
	}

	if err := e.validateChipConservation(); err != nil {
		logger.Error("Chip conservation violation detected", "error", err)
		return nil, err
	}

	logger.Info("Hand complete", "winner", result.Winner, "pot", result.Pot, "class", result.HandClass)
	e.eventBus.Publish(NewHandEndEvent(*result))

	e.table.resetPlayers()
	e.lastResult = result
	return result, nil
}

// showdown evaluates every player still holding a claim on the pot and pays
// the strongest. Equal strengths go to the earliest seat.
func (e *Engine) showdown(handID string) (*HandResult, error) {
	players := e.table.ShowdownPlayers()
	if len(players) == 0 {
		return nil, errors.New("showdown: no player left to award the pot")
	}

	var (
		winner *Player
		best   evaluator.Strength
	)
	names := make([]string, 0, len(players))
	shown := make([]ShownHand, 0, len(players))
	board := e.table.CommunityCards()
	for _, p := range players {
		strength, err := e.evaluator.Evaluate(board, p.HoleCards)
		if err != nil {
			return nil, fmt.Errorf("showdown: evaluate %s: %w", p.Name, err)
		}
		names = append(names, p.Name)
		shown = append(shown, ShownHand{
			Name:      p.Name,
			HoleCards: append([]deck.Card(nil), p.HoleCards...),
			HandClass: e.evaluator.Classify(strength),
		})
		e.logger.Debug("Evaluated hand", "player", p.Name, "cards", deck.FormatCards(p.HoleCards), "strength", strength.Score)
		if winner == nil || strength.Beats(best) {
			winner, best = p, strength
		}
	}

	pot := e.table.takePot()
	winner.Award(pot)

	// An uncontested winner never has to show
	if len(players) < 2 {
		shown = nil
	}

	return &HandResult{
		HandID:     handID,
		HandNumber: e.handNumber,
		Winner:     winner.Name,
		HandClass:  e.evaluator.Classify(best),
		Pot:        pot,
		Showdown:   len(players) > 1,
		Contenders: names,
		Board:      append([]deck.Card(nil), board...),
		Shown:      shown,
	}, nil
}

func (e *Engine) agentFor(p *Player) Agent {
	return e.agents[p.Name]
}

// validateChipConservation checks that total chips haven't changed
func (e *Engine) validateChipConservation() error {
	if total := e.table.TotalChips(); total != e.startingChipTotal {
		return fmt.Errorf("%w: expected %d chips, found %d", ErrChipConservation, e.startingChipTotal, total)
	}
	return nil
}

// mustDeal panics when the deck runs out. A 52-card deck always covers a
// hand for up to 23 players, so this can only be a programming error.
func mustDeal(err error) {
	if err != nil {
		panic(fmt.Sprintf("card supply exhausted: %v", err))
	}
}
