package evaluator

import (
	"slices"

	"github.com/paulhankin/poker"
)

// Category is the class of a five-card hand, ordered weakest first. The zero
// value is an unknown hand.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case Pair:
		return "Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// categorize classifies exactly five cards
func categorize(hand []poker.Card) Category {
	if len(hand) != 5 {
		return 0
	}

	counts := make(map[int]int, 5)
	flush := true
	for _, c := range hand {
		counts[aceHigh(c.Rank())]++
		if c.Suit() != hand[0].Suit() {
			flush = false
		}
	}

	groups := make([]int, 0, len(counts))
	for _, n := range counts {
		groups = append(groups, n)
	}
	slices.Sort(groups)
	slices.Reverse(groups)

	straight := len(counts) == 5 && isStraight(counts)
	switch {
	case straight && flush:
		return StraightFlush
	case groups[0] == 4:
		return FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case groups[0] == 2:
		return Pair
	}
	return HighCard
}

// isStraight reports whether five distinct ranks run in sequence. The ace
// also plays low in A-2-3-4-5.
func isStraight(counts map[int]int) bool {
	lo, hi := 15, 0
	for r := range counts {
		lo, hi = min(lo, r), max(hi, r)
	}
	if hi-lo == 4 {
		return true
	}
	for _, r := range []int{14, 2, 3, 4, 5} {
		if counts[r] == 0 {
			return false
		}
	}
	return true
}

// aceHigh maps the library's ranks (ace is 1) onto 2..14
func aceHigh(r poker.Rank) int {
	if r == 1 {
		return 14
	}
	return int(r)
}
