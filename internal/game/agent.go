package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-knockout/internal/deck"
)

// Action represents a wagering action
type Action int

const (
	Fold Action = iota
	Bet
	Call
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Bet:
		return "bet"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// ParseAction converts user input into an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "bet", "b", "raise", "r":
		return Bet, nil
	case "call", "c":
		return Call, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Decision represents a player's decision
type Decision struct {
	Action    Action
	Amount    int    // Only used for Bet
	Reasoning string // Human-readable explanation
}

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Action    Action
	MinAmount int // For bets: minimum amount. For calls: the call amount
	MaxAmount int // For bets: the player's stack
}

// PlayerState represents the read-only state of a player for decision making
type PlayerState struct {
	Name       string
	Chips      int
	Active     bool
	Eliminated bool
	HoleCards  []deck.Card // Only populated for the acting player
}

// TableState represents the read-only state of the table for decision making
type TableState struct {
	HandNumber          int
	Phase               Phase
	Pot                 int
	CommunityCards      []deck.Card
	Contributions       []int // amounts wagered so far this phase
	MinimumContribution int
	Players             []PlayerState
	ActingPlayerIdx     int
	PreviousHand        *HandResult
}

// Actor returns the acting player's state
func (ts TableState) Actor() PlayerState {
	return ts.Players[ts.ActingPlayerIdx]
}

// Agent is anything (human or automatic) that decides for a player. Agents
// receive immutable state and return decisions; the engine mutates state.
type Agent interface {
	MakeDecision(state TableState, validActions []ValidAction) Decision
}

// Rejecter is implemented by agents that want to hear why a decision was
// refused before they are asked again.
type Rejecter interface {
	Rejected(decision Decision, err error)
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(state TableState, validActions []ValidAction) Decision

// MakeDecision calls f
func (f AgentFunc) MakeDecision(state TableState, validActions []ValidAction) Decision {
	return f(state, validActions)
}
