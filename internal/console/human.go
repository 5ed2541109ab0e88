package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/holdem-knockout/internal/game"
)

// aliases maps French commands onto the English actions
var aliases = map[string]string{
	"se coucher": "fold",
	"coucher":    "fold",
	"suivre":     "call",
	"miser":      "bet",
	"relancer":   "bet",
}

// HumanAgent asks a person at the terminal for each decision
type HumanAgent struct {
	in    *bufio.Scanner
	theme *Theme
}

// NewHumanAgent reads decisions from in and writes prompts through theme
func NewHumanAgent(in io.Reader, theme *Theme) *HumanAgent {
	return &HumanAgent{
		in:    bufio.NewScanner(in),
		theme: theme,
	}
}

// MakeDecision prompts until the input parses. Legality is left to the
// engine, which reports back through Rejected. Closed input folds.
func (h *HumanAgent) MakeDecision(state game.TableState, validActions []game.ValidAction) game.Decision {
	h.showState(state, validActions)

	for {
		line, ok := h.readLine(h.theme.Action.Render("> "))
		if !ok {
			return game.Decision{Action: game.Fold, Reasoning: "input closed"}
		}

		decision, err := h.parse(line)
		if err != nil {
			h.printf("%s\n", h.theme.Error.Render(err.Error()))
			continue
		}
		return decision
	}
}

// Rejected explains why the engine refused the last decision
func (h *HumanAgent) Rejected(decision game.Decision, err error) {
	h.printf("%s\n", h.theme.Error.Render(fmt.Sprintf("Cannot %s: %v", decision.Action, err)))
}

func (h *HumanAgent) showState(state game.TableState, validActions []game.ValidAction) {
	me := state.Actor()
	h.printf("\n%s\n", h.theme.Header.Render(fmt.Sprintf("%s to act · %s · pot %d", me.Name, state.Phase, state.Pot)))
	h.printf("Board:      %s\n", h.theme.Cards(state.CommunityCards))
	h.printf("Your cards: %s   Chips: %d\n", h.theme.Cards(me.HoleCards), me.Chips)
	if state.MinimumContribution > 0 {
		h.printf("To call:    %d\n", state.MinimumContribution)
	}

	var options []string
	for _, va := range validActions {
		switch va.Action {
		case game.Fold:
			options = append(options, "fold")
		case game.Call:
			options = append(options, fmt.Sprintf("call %d", va.MinAmount))
		case game.Bet:
			options = append(options, fmt.Sprintf("bet %d-%d", va.MinAmount, va.MaxAmount))
		}
	}
	h.printf("%s\n", h.theme.Muted.Render("Actions: "+strings.Join(options, ", ")))
}

// parse turns a line such as "bet 20", "call" or "miser 20" into a decision.
// A bet without an amount asks for one.
func (h *HumanAgent) parse(line string) (game.Decision, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return game.Decision{}, errors.New("enter an action")
	}
	for alias, action := range aliases {
		if line == alias || strings.HasPrefix(line, alias+" ") {
			line = action + strings.TrimPrefix(line, alias)
			break
		}
	}

	fields := strings.Fields(line)
	action, err := game.ParseAction(fields[0])
	if err != nil {
		return game.Decision{}, err
	}
	d := game.Decision{Action: action, Reasoning: "human"}
	if action != game.Bet {
		return d, nil
	}

	amountStr := ""
	if len(fields) > 1 {
		amountStr = fields[1]
	} else {
		var ok bool
		if amountStr, ok = h.readLine("Amount: "); !ok {
			return game.Decision{}, errors.New("no amount entered")
		}
	}
	amount, err := strconv.Atoi(strings.TrimSpace(amountStr))
	if err != nil {
		return game.Decision{}, fmt.Errorf("invalid amount %q", amountStr)
	}
	d.Amount = amount
	return d, nil
}

func (h *HumanAgent) readLine(prompt string) (string, bool) {
	h.printf("%s", prompt)
	if !h.in.Scan() {
		h.printf("\n")
		return "", false
	}
	return h.in.Text(), true
}

func (h *HumanAgent) printf(format string, a ...any) {
	fmt.Fprintf(h.theme.Writer(), format, a...)
}
