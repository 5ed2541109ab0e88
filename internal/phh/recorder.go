package phh

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/game"
)

// Recorder subscribes to a session's events and writes one PHH file per
// hand. Hole cards are recorded hidden unless shown at a contested
// showdown.
type Recorder struct {
	dir    string
	table  string
	logger *log.Logger

	hand     *HandHistory
	seats    map[string]int
	stacks   []int
	boardLen int

	written []string
	err     error
}

// NewRecorder writes hands played at table into dir
func NewRecorder(dir, table string, logger *log.Logger) *Recorder {
	return &Recorder{
		dir:    dir,
		table:  table,
		logger: logger.WithPrefix("phh"),
	}
}

// Written returns the files written so far, in hand order
func (r *Recorder) Written() []string {
	return slices.Clone(r.written)
}

// Err returns the first error encountered while writing
func (r *Recorder) Err() error {
	return r.err
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.HandStartEvent:
		r.start(e)
	case game.PhaseEvent:
		if r.hand == nil {
			return
		}
		if revealed := e.CommunityCards[min(r.boardLen, len(e.CommunityCards)):]; len(revealed) > 0 {
			r.hand.Actions = append(r.hand.Actions, FormatBoardDeal(revealed))
		}
		r.boardLen = len(e.CommunityCards)
	case game.PlayerActionEvent:
		if r.hand == nil {
			return
		}
		seat, ok := r.seats[e.PlayerName]
		if !ok {
			return
		}
		r.hand.Actions = append(r.hand.Actions, FormatAction(seat, e.Action, e.Amount))
		r.stacks[seat] = e.ChipsAfter
	case game.HandEndEvent:
		r.finish(e.Result)
	}
}

func (r *Recorder) start(e game.HandStartEvent) {
	r.hand = &HandHistory{
		Variant:    Variant,
		Table:      r.table,
		MinBet:     1,
		HandID:     e.HandID,
		HandNumber: e.HandNumber,
	}
	r.hand.SetTimestamp(e.Timestamp())
	r.seats = make(map[string]int)
	r.stacks = r.stacks[:0]
	r.boardLen = 0

	for _, p := range e.Players {
		if p.Eliminated {
			continue
		}
		seat := len(r.hand.Players)
		r.seats[p.Name] = seat
		r.hand.Players = append(r.hand.Players, p.Name)
		r.hand.Seats = append(r.hand.Seats, seat+1)
		r.hand.StartingStacks = append(r.hand.StartingStacks, p.Chips)
		r.stacks = append(r.stacks, p.Chips)
	}

	n := len(r.hand.Players)
	r.hand.SeatCount = n
	r.hand.Antes = make([]int, n)
	r.hand.BlindsOrStraddles = make([]int, n)
	for seat := range n {
		r.hand.Actions = append(r.hand.Actions, FormatHoleDeal(seat, nil))
	}
}

func (r *Recorder) finish(result game.HandResult) {
	if r.hand == nil {
		return
	}
	hand := r.hand
	r.hand = nil

	for _, s := range result.Shown {
		if seat, ok := r.seats[s.Name]; ok {
			hand.Actions = append(hand.Actions, FormatShow(seat, s.HoleCards))
		}
	}

	hand.Winnings = make([]int, len(r.stacks))
	hand.FinishingStacks = slices.Clone(r.stacks)
	if seat, ok := r.seats[result.Winner]; ok {
		hand.Winnings[seat] = result.Pot
		hand.FinishingStacks[seat] += result.Pot
	}

	path, err := WriteHand(r.dir, hand)
	if err != nil {
		r.logger.Error("Failed to write hand history", "hand", hand.HandNumber, "error", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.logger.Debug("Wrote hand history", "hand", hand.HandNumber, "path", path)
	r.written = append(r.written, path)
}
