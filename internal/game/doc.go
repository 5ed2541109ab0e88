// Package game implements an elimination Texas Hold'em session.
//
// A Session seats players on a Table and asks its Engine to play hands until
// a single player holds every chip. Each hand deals two hole cards per
// player, then reveals the flop, turn and river, running one WageringRound
// after each reveal while at least two contenders remain. The strongest
// hand at showdown takes the whole pot.
//
// # Basic Usage
//
//	cfg := game.SessionConfig{
//	    PlayerNames:   []string{"Alice", "Bob"},
//	    StartingChips: 100,
//	}
//	agents := map[string]game.Agent{"Alice": human, "Bob": bot.NewCallBot(logger)}
//	s, err := game.NewSession(cfg, evaluator.New(), agents, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := s.Run(ctx)
//
// # Wagering
//
// Every contender acts once per phase in seating order. A bet must be at
// least the largest contribution made so far in the phase, and a call pays
// exactly that amount. Action is not reopened after a raise, blinds and
// antes are not posted, and a player who cannot afford a call must fold.
// A player who wagers their last chip keeps a claim on the pot but takes no
// further action; there are no side pots. The showdown is therefore not
// limited to contenders, the players still holding chips: all-in players
// are evaluated with them (see Player.InShowdown).
//
// # Deterministic Testing
//
// Pass a seed in SessionConfig to replay a session, or use WithDeckFactory
// with deck.NewStacked for complete control over the deal:
//
//	s, err := game.NewSession(cfg, eval, agents, logger,
//	    game.WithDeckFactory(func() game.CardSource {
//	        return deck.NewStacked(deck.MustParseCards("AsAd KdKc 2s7d9c JhKs")...)
//	    }))
package game
