// Package evaluator ranks Texas Hold'em hands. Scoring is delegated to
// github.com/paulhankin/poker, where a higher score is a stronger hand.
package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/lox/holdem-knockout/internal/deck"
)

// Strength is the ranked value of a 7-card hand. Description spells out
// the best five cards (e.g. "KKK-J-9"); Category is its class.
type Strength struct {
	Score       int16
	Category    Category
	Description string
}

// Compare returns 1 if s beats other, -1 if other beats s, 0 on a tie
func (s Strength) Compare(other Strength) int {
	switch {
	case s.Score > other.Score:
		return 1
	case s.Score < other.Score:
		return -1
	}
	return 0
}

// Beats reports whether s is strictly stronger than other
func (s Strength) Beats(other Strength) bool {
	return s.Compare(other) > 0
}

func (s Strength) String() string {
	return s.Description
}

// Evaluator ranks a 5-card board plus 2 hole cards
type Evaluator struct{}

// New creates an evaluator
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores the best five-card hand out of community and hole cards
func (e *Evaluator) Evaluate(community, hole []deck.Card) (Strength, error) {
	if len(community) != 5 {
		return Strength{}, fmt.Errorf("evaluate: need 5 community cards, got %d", len(community))
	}
	if len(hole) != 2 {
		return Strength{}, fmt.Errorf("evaluate: need 2 hole cards, got %d", len(hole))
	}

	var seven [7]poker.Card
	for i, c := range append(append(make([]deck.Card, 0, 7), community...), hole...) {
		pc, err := toLibraryCard(c)
		if err != nil {
			return Strength{}, err
		}
		seven[i] = pc
	}

	desc, err := poker.Describe(seven[:])
	if err != nil {
		return Strength{}, fmt.Errorf("evaluate: %w", err)
	}

	score := poker.Eval7(&seven)
	best, ok := poker.EvalToHand5(score)
	if !ok {
		return Strength{}, fmt.Errorf("evaluate: no five-card hand for score %d", score)
	}

	return Strength{
		Score:       score,
		Category:    categorize(best),
		Description: desc,
	}, nil
}

// Classify returns the hand class label for s, such as "Pair" or
// "Straight Flush"
func (e *Evaluator) Classify(s Strength) string {
	return s.Category.String()
}

func toLibraryCard(c deck.Card) (poker.Card, error) {
	var none poker.Card
	var suit poker.Suit
	switch c.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	default:
		return none, fmt.Errorf("evaluate: invalid suit in %v", c)
	}

	// The library numbers ranks 1..13 with the ace low.
	rank := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		rank = poker.Rank(1)
	}

	card, err := poker.MakeCard(suit, rank)
	if err != nil {
		return none, fmt.Errorf("evaluate: card %v: %w", c, err)
	}
	return card, nil
}
