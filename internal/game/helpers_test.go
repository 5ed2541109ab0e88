package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/deck"
	"github.com/lox/holdem-knockout/internal/evaluator"
)

// MockAgent follows a predetermined script and folds once it runs out
type MockAgent struct {
	actions  []Decision
	index    int
	asked    int
	rejected []error
}

func NewMockAgent(actions ...Decision) *MockAgent {
	return &MockAgent{actions: actions}
}

func (m *MockAgent) MakeDecision(tableState TableState, validActions []ValidAction) Decision {
	m.asked++
	if m.index >= len(m.actions) {
		return Decision{Action: Fold, Reasoning: "script exhausted"}
	}

	decision := m.actions[m.index]
	m.index++
	return decision
}

func (m *MockAgent) Rejected(decision Decision, err error) {
	m.rejected = append(m.rejected, err)
}

// AlwaysCallAgent calls when it can and otherwise opens for the minimum
type AlwaysCallAgent struct{}

func (a *AlwaysCallAgent) MakeDecision(tableState TableState, validActions []ValidAction) Decision {
	for _, action := range validActions {
		if action.Action == Call {
			return Decision{Action: Call, Reasoning: "always call"}
		}
	}
	for _, action := range validActions {
		if action.Action == Bet {
			return Decision{Action: Bet, Amount: action.MinAmount, Reasoning: "always call (opening)"}
		}
	}
	return Decision{Action: Fold, Reasoning: "cannot afford to call"}
}

// AlwaysFoldAgent always folds
type AlwaysFoldAgent struct{}

func (a *AlwaysFoldAgent) MakeDecision(tableState TableState, validActions []ValidAction) Decision {
	return Decision{Action: Fold, Reasoning: "always fold"}
}

// fakeEvaluator scores hands by their hole cards and records every evaluation
type fakeEvaluator struct {
	scores    map[string]int16
	evaluated [][]deck.Card
}

func newFakeEvaluator(scores map[string]int16) *fakeEvaluator {
	return &fakeEvaluator{scores: scores}
}

func (f *fakeEvaluator) Evaluate(community, hole []deck.Card) (evaluator.Strength, error) {
	f.evaluated = append(f.evaluated, append([]deck.Card(nil), hole...))
	key := deck.FormatCards(hole)
	return evaluator.Strength{Score: f.scores[key], Description: "hole " + key}, nil
}

func (f *fakeEvaluator) Classify(s evaluator.Strength) string {
	return s.Description
}

// eventRecorder captures published events in order
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

// stackedDecks returns a factory dealing the same fixed order every hand
func stackedDecks(cards string) DeckFactory {
	parsed := deck.MustParseCards(cards)
	return func() CardSource { return deck.NewStacked(parsed...) }
}

// seatedPlayer is a name and stack for newTestTable
type seatedPlayer struct {
	name  string
	chips int
}

func newTestTable(t *testing.T, cards string, players ...seatedPlayer) *Table {
	t.Helper()
	table := NewTable(stackedDecks(cards))
	for _, p := range players {
		if err := table.SeatPlayer(NewPlayer(p.name, p.chips)); err != nil {
			t.Fatalf("SeatPlayer(%s) failed: %v", p.name, err)
		}
	}
	return table
}

func newTestRound(table *Table, phase Phase) *WageringRound {
	return NewWageringRound(table, phase, log.New(io.Discard))
}

func bet(amount int) Decision { return Decision{Action: Bet, Amount: amount} }

func call() Decision { return Decision{Action: Call} }

func fold() Decision { return Decision{Action: Fold} }

// Deal order is every player's two hole cards in seating order, then the
// flop, turn and river with no burn cards.
const testDeal = "AsAd KdKc QhQs 2s7d9c Jh Ks"

func testCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q) failed: %v", s, err)
	}
	return cards
}
