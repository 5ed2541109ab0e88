package bot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/game"
)

// ScriptedBot replays a fixed list of decisions and then defers to its
// fallback agent. Rejected decisions are kept for inspection.
type ScriptedBot struct {
	script   []game.Decision
	next     int
	fallback game.Agent
	rejected []error
}

// NewScriptedBot creates a bot that plays script in order, then folds
func NewScriptedBot(script ...game.Decision) *ScriptedBot {
	return &ScriptedBot{script: script, fallback: NewFoldBot(log.New(io.Discard))}
}

// ParseScript parses a comma separated script such as "bet 20, call, fold"
func ParseScript(s string) ([]game.Decision, error) {
	var script []game.Decision
	for _, step := range strings.Split(s, ",") {
		fields := strings.Fields(step)
		if len(fields) == 0 {
			continue
		}
		action, err := game.ParseAction(fields[0])
		if err != nil {
			return nil, err
		}
		d := game.Decision{Action: action, Reasoning: "scripted"}
		if action == game.Bet {
			if len(fields) != 2 {
				return nil, fmt.Errorf("script step %q: bet needs an amount", strings.TrimSpace(step))
			}
			if d.Amount, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("script step %q: %w", strings.TrimSpace(step), err)
			}
		}
		script = append(script, d)
	}
	return script, nil
}

// WithFallback sets the agent used once the script runs out
func (s *ScriptedBot) WithFallback(agent game.Agent) *ScriptedBot {
	s.fallback = agent
	return s
}

func (s *ScriptedBot) MakeDecision(tableState game.TableState, validActions []game.ValidAction) game.Decision {
	if s.next < len(s.script) {
		d := s.script[s.next]
		s.next++
		return d
	}
	return s.fallback.MakeDecision(tableState, validActions)
}

// Rejected records why the engine refused a decision
func (s *ScriptedBot) Rejected(decision game.Decision, err error) {
	s.rejected = append(s.rejected, err)
}

// Rejections returns every error reported by the engine so far
func (s *ScriptedBot) Rejections() []error {
	return s.rejected
}

// Remaining returns the number of scripted decisions not yet played
func (s *ScriptedBot) Remaining() int {
	return len(s.script) - s.next
}
