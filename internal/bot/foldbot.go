package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/game"
)

// FoldBot is a simple bot that always folds
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger.WithPrefix("foldbot")}
}

func (f *FoldBot) MakeDecision(tableState game.TableState, validActions []game.ValidAction) game.Decision {
	f.logger.Debug("Folding",
		"player", tableState.Actor().Name,
		"phase", tableState.Phase,
		"toCall", tableState.MinimumContribution)
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}
