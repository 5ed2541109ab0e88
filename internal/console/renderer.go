package console

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-knockout/internal/game"
)

// Renderer prints engine events to the terminal. Subscribe it to a
// session's event bus.
type Renderer struct {
	theme       *Theme
	pacer       *Pacer
	clearScreen bool
}

// NewRenderer creates a renderer. When clearScreen is set the terminal is
// wiped at the start of every hand.
func NewRenderer(theme *Theme, pacer *Pacer, clearScreen bool) *Renderer {
	return &Renderer{
		theme:       theme,
		pacer:       pacer,
		clearScreen: clearScreen,
	}
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.HandStartEvent:
		r.handStart(e)
	case game.PhaseEvent:
		r.phase(e)
	case game.PlayerActionEvent:
		r.playerAction(e)
	case game.HandEndEvent:
		r.handEnd(e)
	case game.SessionEndEvent:
		r.sessionEnd(e)
	}
}

func (r *Renderer) println(a ...any) {
	fmt.Fprintln(r.theme.Writer(), a...)
}

func (r *Renderer) handStart(e game.HandStartEvent) {
	if r.clearScreen {
		r.theme.ClearScreen()
	}
	if e.PreviousHand != nil {
		r.println(r.theme.Muted.Render("Last hand: " + e.PreviousHand.String()))
	}
	r.println(r.theme.Header.Render(fmt.Sprintf("Hand #%d", e.HandNumber)))
	r.println(r.standings(e.Players))
}

func (r *Renderer) phase(e game.PhaseEvent) {
	r.println()
	r.println(r.theme.Info.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(e.Phase.String()))),
		r.theme.Cards(e.CommunityCards),
		r.theme.Muted.Render(fmt.Sprintf("(pot %d)", e.Pot)))
	if !e.WillWager {
		r.println(r.theme.Muted.Render("No betting: fewer than two players can act"))
	}
	r.pacer.Pause()
}

func (r *Renderer) playerAction(e game.PlayerActionEvent) {
	var line string
	switch e.Action {
	case game.Fold:
		line = fmt.Sprintf("%s folds", e.PlayerName)
	case game.Call:
		line = fmt.Sprintf("%s calls %d", e.PlayerName, e.Amount)
	case game.Bet:
		line = fmt.Sprintf("%s bets %d", e.PlayerName, e.Amount)
	}
	if e.ChipsAfter == 0 && e.Action != game.Fold {
		line += " and is all-in"
	}
	r.println(r.theme.Action.Render(line), r.theme.Muted.Render(fmt.Sprintf("(pot %d)", e.PotAfter)))
}

func (r *Renderer) handEnd(e game.HandEndEvent) {
	res := e.Result
	r.println()
	if res.Showdown {
		r.println(r.theme.Muted.Render("Showdown: " + strings.Join(res.Contenders, ", ")))
	}
	r.println(r.theme.Success.Render(fmt.Sprintf("%s wins %d chips with %s", res.Winner, res.Pot, res.HandClass)))
	r.pacer.Pause()
}

func (r *Renderer) sessionEnd(e game.SessionEndEvent) {
	res := e.Result
	r.println()
	r.println(r.theme.Header.Render(fmt.Sprintf("%s wins the game after %d hands", res.Winner, res.Hands)))
	r.println(r.standings(res.Standings))
}

func (r *Renderer) standings(players []game.PlayerState) string {
	var b strings.Builder
	for i, p := range players {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %-12s %5d chips", p.Name, p.Chips)
		if p.Eliminated {
			b.WriteString(r.theme.Muted.Render(line + "  (out)"))
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
