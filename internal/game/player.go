package game

import (
	"fmt"

	"github.com/lox/holdem-knockout/internal/deck"
)

// Player represents a seated player
type Player struct {
	Name      string
	Chips     int
	HoleCards []deck.Card
	Active    bool // still contesting the current hand
	Committed int  // chips wagered in the current hand
}

// NewPlayer creates an active player with the given stack
func NewPlayer(name string, chips int) *Player {
	return &Player{
		Name:      name,
		Chips:     chips,
		HoleCards: make([]deck.Card, 0, 2),
		Active:    chips > 0,
	}
}

// Wager removes amount from the player's stack and returns it for the pot.
// The stack is left untouched when the wager is rejected.
func (p *Player) Wager(amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidWager, amount)
	}
	if amount > p.Chips {
		return 0, fmt.Errorf("%w: %s has %d chips, cannot wager %d", ErrInvalidWager, p.Name, p.Chips, amount)
	}
	p.Chips -= amount
	p.Committed += amount
	return amount, nil
}

// Fold takes the player out of the current hand
func (p *Player) Fold() {
	p.Active = false
}

// IsEliminated returns true once the player has no chips
func (p *Player) IsEliminated() bool {
	return p.Chips == 0
}

// IsContender returns true if the player can still act in this hand
func (p *Player) IsContender() bool {
	return p.Active && !p.IsEliminated()
}

// InShowdown returns true if the player is still holding a claim on the pot.
// A player who wagered their last chip this hand stays in.
func (p *Player) InShowdown() bool {
	return p.Active && (p.Chips > 0 || p.Committed > 0)
}

// Award adds winnings to the player's stack
func (p *Player) Award(amount int) {
	p.Chips += amount
}

// ResetForNewHand re-arms the player for the next hand. Eliminated players
// stay inactive.
func (p *Player) ResetForNewHand() {
	p.HoleCards = p.HoleCards[:0]
	p.Committed = 0
	p.Active = !p.IsEliminated()
}

// String returns a display line such as "Alice (80 chips) A♠ K♦"
func (p *Player) String() string {
	s := fmt.Sprintf("%s (%d chips)", p.Name, p.Chips)
	if len(p.HoleCards) > 0 {
		s += " " + deck.FormatCards(p.HoleCards)
	}
	return s
}
