package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/lox/holdem-knockout/internal/randutil"
)

// ErrEmptyDeck is returned when a draw asks for more cards than remain.
var ErrEmptyDeck = errors.New("deck: not enough cards remaining")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new standard 52-card deck, already shuffled with rng.
// A nil rng seeds from the current time.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	d.Shuffle()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes n cards from the top of the deck
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("draw %d of %d: %w", n, len(d.cards), ErrEmptyDeck)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Stacked is a deck that deals cards in a fixed order. Shuffle is a no-op,
// which makes it suitable for replaying a known deal.
type Stacked struct {
	cards []Card
}

// NewStacked creates a stacked deck that deals cards in the given order
func NewStacked(cards ...Card) *Stacked {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Stacked{cards: c}
}

// Shuffle keeps the stacked order
func (s *Stacked) Shuffle() {}

// Draw removes n cards from the top of the stack
func (s *Stacked) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(s.cards) {
		return nil, fmt.Errorf("draw %d of %d: %w", n, len(s.cards), ErrEmptyDeck)
	}
	cards := make([]Card, n)
	copy(cards, s.cards[:n])
	s.cards = s.cards[n:]
	return cards, nil
}

// Remaining returns the number of cards left in the stack
func (s *Stacked) Remaining() int {
	return len(s.cards)
}
