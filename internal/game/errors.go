package game

import (
	"errors"

	"github.com/lox/holdem-knockout/internal/deck"
)

var (
	// ErrInvalidWager is returned for a non-positive amount, an amount above
	// the player's chips, or an amount below the current minimum. The acting
	// player is asked again.
	ErrInvalidWager = errors.New("invalid wager")

	// ErrInvalidAction is returned for an unknown action or a call when
	// nothing has been wagered this phase.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidConfiguration is returned when a session cannot start.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidPlayer is returned when seating a nil player.
	ErrInvalidPlayer = errors.New("invalid player")

	// ErrChipConservation means chips were created or destroyed during a hand.
	ErrChipConservation = errors.New("chip conservation violated")

	// ErrHandLimit is returned when a session reaches its configured hand cap
	// before a single player holds every chip.
	ErrHandLimit = errors.New("hand limit reached")

	// ErrEmptyDeck is the deck's exhaustion error, re-exported for callers.
	ErrEmptyDeck = deck.ErrEmptyDeck
)
