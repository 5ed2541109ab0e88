// Package bot provides automatic agents for simulations and tests. They
// follow fixed rules and make no attempt at strategy.
package bot

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/game"
)

// Kinds lists the agent kinds New understands
var Kinds = []string{"call", "fold", "random"}

// New builds the automatic agent of the given kind. Seed feeds the random
// agent and is ignored by the others.
func New(kind string, seed int64, logger *log.Logger) (game.Agent, error) {
	switch strings.ToLower(kind) {
	case "call":
		return NewCallBot(logger), nil
	case "fold":
		return NewFoldBot(logger), nil
	case "random":
		return NewRandBot(seed, logger), nil
	}
	return nil, fmt.Errorf("unknown bot kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
}

func hasAction(action game.Action, validActions []game.ValidAction) bool {
	_, ok := lookup(action, validActions)
	return ok
}

func lookup(action game.Action, validActions []game.ValidAction) (game.ValidAction, bool) {
	for _, validAction := range validActions {
		if validAction.Action == action {
			return validAction, true
		}
	}
	return game.ValidAction{}, false
}

// findAction returns preferredAction at its minimum amount, falling back to
// a fold which is always legal
func findAction(preferredAction game.Action, validActions []game.ValidAction, reasoning string) game.Decision {
	if validAction, ok := lookup(preferredAction, validActions); ok {
		return game.Decision{
			Action:    preferredAction,
			Amount:    validAction.MinAmount,
			Reasoning: reasoning,
		}
	}
	return game.Decision{Action: game.Fold, Reasoning: "fallback: " + reasoning}
}
