package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// WageringRound runs one betting phase. Every contender acts once in seating
// order; a bet sets the running maximum that later players must match.
// Action is not reopened after a raise.
type WageringRound struct {
	table         *Table
	phase         Phase
	contributions []int
	maxRetries    int
	logger        *log.Logger
	eventBus      EventBus
	handNumber    int
	previous      *HandResult
}

// NewWageringRound creates the round for phase on table
func NewWageringRound(table *Table, phase Phase, logger *log.Logger) *WageringRound {
	return &WageringRound{
		table:  table,
		phase:  phase,
		logger: logger,
	}
}

// Contributions returns the amounts wagered so far this phase
func (wr *WageringRound) Contributions() []int {
	return append([]int(nil), wr.contributions...)
}

// MinimumContribution returns the largest contribution this phase, which is
// the least a bet must be and exactly what a call costs. Zero before the
// first bet.
func (wr *WageringRound) MinimumContribution() int {
	highest := 0
	for _, c := range wr.contributions {
		if c > highest {
			highest = c
		}
	}
	return highest
}

// ValidActions returns the actions p may take now
func (wr *WageringRound) ValidActions(p *Player) []ValidAction {
	actions := []ValidAction{{Action: Fold}}
	minimum := wr.MinimumContribution()

	if len(wr.contributions) > 0 && minimum <= p.Chips {
		actions = append(actions, ValidAction{Action: Call, MinAmount: minimum, MaxAmount: minimum})
	}

	minBet := max(minimum, 1)
	if minBet <= p.Chips {
		actions = append(actions, ValidAction{Action: Bet, MinAmount: minBet, MaxAmount: p.Chips})
	}
	return actions
}

// Apply validates and executes a decision for p. A rejected decision leaves
// the table, the player and the contribution record unchanged.
func (wr *WageringRound) Apply(p *Player, d Decision) error {
	switch d.Action {
	case Fold:
		p.Fold()
		return nil

	case Bet:
		if d.Amount <= 0 {
			return fmt.Errorf("%w: bet must be positive, got %d", ErrInvalidWager, d.Amount)
		}
		if minimum := wr.MinimumContribution(); d.Amount < minimum {
			return fmt.Errorf("%w: bet of %d is below the minimum of %d", ErrInvalidWager, d.Amount, minimum)
		}
		if err := wr.table.Collect(p, d.Amount); err != nil {
			return err
		}
		wr.contributions = append(wr.contributions, d.Amount)
		return nil

	case Call:
		if len(wr.contributions) == 0 {
			return fmt.Errorf("%w: nothing to call, first wager of the %s must be a bet", ErrInvalidAction, wr.phase)
		}
		amount := wr.MinimumContribution()
		if err := wr.table.Collect(p, amount); err != nil {
			return err
		}
		wr.contributions = append(wr.contributions, amount)
		return nil
	}

	return fmt.Errorf("%w: %v", ErrInvalidAction, d.Action)
}

// Run asks each contender for a decision, in seating order, until every one
// of them has acted once. agentFor must return an agent for every contender.
func (wr *WageringRound) Run(agentFor func(*Player) Agent) {
	if wr.table.ContenderCount() < 2 {
		wr.logger.Debug("Skipping wagering round", "phase", wr.phase, "contenders", wr.table.ContenderCount())
		return
	}

	for _, p := range wr.table.Players() {
		if !p.IsContender() {
			continue
		}
		// Everyone else folded; nobody is left to wager against. A player who
		// just went all-in still counts as an opponent.
		if len(wr.table.ShowdownPlayers()) < 2 {
			break
		}
		wr.act(p, agentFor(p))
	}
}

// act loops until p's decision is accepted. After maxRetries consecutive
// rejections (when set) the player is folded.
func (wr *WageringRound) act(p *Player, agent Agent) {
	for attempt := 1; ; attempt++ {
		state := wr.table.State(p)
		state.HandNumber = wr.handNumber
		state.Phase = wr.phase
		state.Contributions = wr.Contributions()
		state.MinimumContribution = wr.MinimumContribution()
		state.PreviousHand = wr.previous

		decision := agent.MakeDecision(state, wr.ValidActions(p))
		err := wr.Apply(p, decision)
		if err == nil {
			wr.publish(p, decision)
			return
		}

		wr.logger.Debug("Rejected decision",
			"player", p.Name,
			"action", decision.Action,
			"amount", decision.Amount,
			"attempt", attempt,
			"error", err)
		if r, ok := agent.(Rejecter); ok {
			r.Rejected(decision, err)
		}

		if wr.maxRetries > 0 && attempt >= wr.maxRetries {
			wr.logger.Warn("Folding player after repeated invalid decisions", "player", p.Name, "attempts", attempt)
			forced := Decision{Action: Fold, Reasoning: "too many invalid decisions"}
			p.Fold()
			wr.publish(p, forced)
			return
		}
	}
}

func (wr *WageringRound) publish(p *Player, d Decision) {
	amount := 0
	switch d.Action {
	case Bet:
		amount = d.Amount
	case Call:
		amount = wr.MinimumContribution()
	}

	wr.logger.Debug("Player action",
		"player", p.Name,
		"phase", wr.phase,
		"action", d.Action,
		"amount", amount,
		"pot", wr.table.Pot(),
		"reasoning", d.Reasoning)

	if wr.eventBus != nil {
		wr.eventBus.Publish(NewPlayerActionEvent(p.Name, d.Action, amount, wr.phase, d.Reasoning, wr.table.Pot(), p.Chips))
	}
}
