package phh

import (
	"strings"

	"github.com/lox/holdem-knockout/internal/deck"
)

// HiddenCards stands in for two hole cards that were never shown
const HiddenCards = "????"

var suitLetters = map[deck.Suit]byte{
	deck.Spades:   's',
	deck.Hearts:   'h',
	deck.Diamonds: 'd',
	deck.Clubs:    'c',
}

// FormatCard renders a card in PHH notation (e.g. Th)
func FormatCard(c deck.Card) string {
	suit, ok := suitLetters[c.Suit]
	if !ok {
		return "??"
	}
	return c.Rank.String() + string(suit)
}

// FormatCards renders cards without separators (e.g. AhKh)
func FormatCards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(FormatCard(c))
	}
	return b.String()
}
