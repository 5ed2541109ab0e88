package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/game"
)

// CallBot matches any wager it can afford and opens each phase with the
// smallest legal bet so the hand keeps moving. It folds only when a call
// would cost more than its stack.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger.WithPrefix("callbot")}
}

func (c *CallBot) MakeDecision(tableState game.TableState, validActions []game.ValidAction) game.Decision {
	if hasAction(game.Call, validActions) {
		return findAction(game.Call, validActions, "call-bot calling")
	}

	// Nothing to call yet this phase
	if len(tableState.Contributions) == 0 && hasAction(game.Bet, validActions) {
		return findAction(game.Bet, validActions, "call-bot opening for the minimum")
	}

	c.logger.Debug("Cannot afford to call",
		"player", tableState.Actor().Name,
		"chips", tableState.Actor().Chips,
		"toCall", tableState.MinimumContribution)
	return findAction(game.Fold, validActions, "call-bot forced fold")
}
