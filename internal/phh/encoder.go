package phh

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-knockout/internal/deck"
	"github.com/lox/holdem-knockout/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func player(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}

// FormatAction converts a wagering action by the zero-based seat to a PHH
// action line. A call is "cc" and a bet of any size is "cbr" with the
// amount committed.
func FormatAction(seat int, action game.Action, amount int) string {
	switch action {
	case game.Fold:
		return player(seat) + " f"
	case game.Call:
		return player(seat) + " cc"
	case game.Bet:
		return fmt.Sprintf("%s cbr %d", player(seat), amount)
	default:
		return fmt.Sprintf("# %s %s %d", player(seat), action, amount)
	}
}

// FormatHoleDeal records the hole cards dealt to seat, hidden when cards is empty
func FormatHoleDeal(seat int, cards []deck.Card) string {
	shown := FormatCards(cards)
	if shown == "" {
		shown = HiddenCards
	}
	return fmt.Sprintf("d dh %s %s", player(seat), shown)
}

// FormatBoardDeal records community cards revealed together
func FormatBoardDeal(cards []deck.Card) string {
	return "d db " + FormatCards(cards)
}

// FormatShow records seat showing its hole cards at showdown
func FormatShow(seat int, cards []deck.Card) string {
	return fmt.Sprintf("%s sm %s", player(seat), FormatCards(cards))
}
