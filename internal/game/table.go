package game

import (
	"fmt"

	"github.com/lox/holdem-knockout/internal/deck"
)

// Phase is a stage of a hand
type Phase int

const (
	Deal Phase = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Deal:
		return "Deal"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// communityCards returns how many cards the phase reveals
func (p Phase) communityCards() int {
	switch p {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// BettingPhases are the phases that reveal cards and then run a wagering round
var BettingPhases = []Phase{Flop, Turn, River}

// CardSource supplies unique cards for a single hand
type CardSource interface {
	Shuffle()
	Draw(n int) ([]deck.Card, error)
	Remaining() int
}

// DeckFactory builds a fresh card source for each hand
type DeckFactory func() CardSource

// Table represents the shared surface of a session: seats, board and pot
type Table struct {
	players        []*Player
	communityCards []deck.Card
	pot            int
	deck           CardSource
	newDeck        DeckFactory
}

// NewTable creates an empty table that draws a new deck from newDeck every hand
func NewTable(newDeck DeckFactory) *Table {
	return &Table{
		players:        make([]*Player, 0),
		communityCards: make([]deck.Card, 0, 5),
		newDeck:        newDeck,
	}
}

// SeatPlayer appends a player in seating order
func (t *Table) SeatPlayer(p *Player) error {
	if p == nil {
		return fmt.Errorf("%w: nil player", ErrInvalidPlayer)
	}
	t.players = append(t.players, p)
	return nil
}

// Players returns every seated player, eliminated or not, in seating order
func (t *Table) Players() []*Player {
	return t.players
}

// Player returns the seated player with the given name
func (t *Table) Player(name string) *Player {
	for _, p := range t.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Pot returns the chips wagered so far this hand
func (t *Table) Pot() int {
	return t.pot
}

// CommunityCards returns the board
func (t *Table) CommunityCards() []deck.Card {
	return t.communityCards
}

// ResetForNewHand swaps in a freshly shuffled deck and clears board and pot
func (t *Table) ResetForNewHand() {
	t.deck = t.newDeck()
	t.deck.Shuffle()
	t.communityCards = t.communityCards[:0]
	t.pot = 0
}

// DealHoleCards deals two cards to every player that still has chips
func (t *Table) DealHoleCards() error {
	for _, p := range t.players {
		if p.IsEliminated() {
			continue
		}
		cards, err := t.deck.Draw(2)
		if err != nil {
			return fmt.Errorf("deal hole cards to %s: %w", p.Name, err)
		}
		p.HoleCards = append(p.HoleCards[:0], cards...)
	}
	return nil
}

// AdvancePhase reveals the community cards for phase. Ordering is the
// caller's responsibility.
func (t *Table) AdvancePhase(phase Phase) error {
	n := phase.communityCards()
	if n == 0 {
		return fmt.Errorf("phase %s reveals no cards", phase)
	}
	cards, err := t.deck.Draw(n)
	if err != nil {
		return fmt.Errorf("deal %s: %w", phase, err)
	}
	t.communityCards = append(t.communityCards, cards...)
	return nil
}

// Collect moves a validated wager from the player into the pot. Chips and
// pot change together or not at all.
func (t *Table) Collect(p *Player, amount int) error {
	wagered, err := p.Wager(amount)
	if err != nil {
		return err
	}
	t.pot += wagered
	return nil
}

// takePot empties the pot and returns its contents
func (t *Table) takePot() int {
	pot := t.pot
	t.pot = 0
	return pot
}

// Contenders returns players that are active and still have chips
func (t *Table) Contenders() []*Player {
	var contenders []*Player
	for _, p := range t.players {
		if p.IsContender() {
			contenders = append(contenders, p)
		}
	}
	return contenders
}

// ContenderCount returns the number of contenders
func (t *Table) ContenderCount() int {
	n := 0
	for _, p := range t.players {
		if p.IsContender() {
			n++
		}
	}
	return n
}

// ShowdownPlayers returns players with a claim on the pot, in seating order
func (t *Table) ShowdownPlayers() []*Player {
	var players []*Player
	for _, p := range t.players {
		if p.InShowdown() {
			players = append(players, p)
		}
	}
	return players
}

// PlayersWithChips returns players that are not eliminated
func (t *Table) PlayersWithChips() []*Player {
	var players []*Player
	for _, p := range t.players {
		if !p.IsEliminated() {
			players = append(players, p)
		}
	}
	return players
}

// TotalChips returns all chips on the table, stacks plus pot
func (t *Table) TotalChips() int {
	total := t.pot
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

// resetPlayers re-arms every player at a hand boundary
func (t *Table) resetPlayers() {
	for _, p := range t.players {
		p.ResetForNewHand()
	}
}

// State builds the read-only view handed to the acting player's agent
func (t *Table) State(actor *Player) TableState {
	ts := TableState{
		Pot:             t.pot,
		CommunityCards:  append([]deck.Card(nil), t.communityCards...),
		Players:         make([]PlayerState, len(t.players)),
		ActingPlayerIdx: -1,
	}
	for i, p := range t.players {
		ps := PlayerState{
			Name:       p.Name,
			Chips:      p.Chips,
			Active:     p.Active,
			Eliminated: p.IsEliminated(),
		}
		if p == actor {
			ps.HoleCards = append([]deck.Card(nil), p.HoleCards...)
			ts.ActingPlayerIdx = i
		}
		ts.Players[i] = ps
	}
	return ts
}

// String returns a one-line summary of the table
func (t *Table) String() string {
	return fmt.Sprintf("Pot: %d - Board: [%s] - Contenders: %d",
		t.pot, deck.FormatCards(t.communityCards), t.ContenderCount())
}
