package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/game"
	"github.com/lox/holdem-knockout/internal/randutil"
)

// RandBot is a simple bot that makes uniform random legal actions. Folds are
// taken half as often as other actions so hands reach the river.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot seeded with seed
func NewRandBot(seed int64, logger *log.Logger) *RandBot {
	return &RandBot{
		rng:    randutil.New(randutil.Resolve(seed)),
		logger: logger.WithPrefix("randbot"),
	}
}

func (r *RandBot) MakeDecision(tableState game.TableState, validActions []game.ValidAction) game.Decision {
	var candidates []game.ValidAction
	for _, va := range validActions {
		candidates = append(candidates, va)
		if va.Action != game.Fold {
			candidates = append(candidates, va)
		}
	}
	if len(candidates) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	choice := candidates[r.rng.IntN(len(candidates))]

	// For bets, pick random amount between min and max
	amount := choice.MinAmount
	if choice.Action == game.Bet && choice.MaxAmount > choice.MinAmount {
		amount = choice.MinAmount + r.rng.IntN(choice.MaxAmount-choice.MinAmount+1)
	}

	r.logger.Debug("Random decision", "player", tableState.Actor().Name, "action", choice.Action, "amount", amount)
	return game.Decision{Action: choice.Action, Amount: amount, Reasoning: "rand-bot random action"}
}
