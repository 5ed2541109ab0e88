package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-knockout/internal/deck"
	"github.com/lox/holdem-knockout/internal/game"
)

func plainTheme(buf *bytes.Buffer) *Theme {
	return NewTheme(buf, termenv.WithProfile(termenv.Ascii))
}

func promptState() game.TableState {
	return game.TableState{
		HandNumber:          3,
		Phase:               game.Flop,
		Pot:                 20,
		CommunityCards:      deck.MustParseCards("2s7d9c"),
		Contributions:       []int{20},
		MinimumContribution: 20,
		Players: []game.PlayerState{
			{Name: "Bob", Chips: 80, Active: true},
			{Name: "Alice", Chips: 100, Active: true, HoleCards: deck.MustParseCards("AsKh")},
		},
		ActingPlayerIdx: 1,
	}
}

var promptActions = []game.ValidAction{
	{Action: game.Fold},
	{Action: game.Call, MinAmount: 20, MaxAmount: 20},
	{Action: game.Bet, MinAmount: 20, MaxAmount: 100},
}

func TestHumanAgentParsesInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  game.Decision
	}{
		{"bet with amount", "bet 30\n", game.Decision{Action: game.Bet, Amount: 30}},
		{"bet then amount", "b\n45\n", game.Decision{Action: game.Bet, Amount: 45}},
		{"call", "call\n", game.Decision{Action: game.Call}},
		{"fold shorthand", "F\n", game.Decision{Action: game.Fold}},
		{"french bet", "miser 25\n", game.Decision{Action: game.Bet, Amount: 25}},
		{"french call", "suivre\n", game.Decision{Action: game.Call}},
		{"french fold", "se coucher\n", game.Decision{Action: game.Fold}},
		{"retries bad input", "shove\nbet lots\n\ncall\n", game.Decision{Action: game.Call}},
		{"closed input folds", "", game.Decision{Action: game.Fold}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			agent := NewHumanAgent(strings.NewReader(tt.input), plainTheme(&out))

			got := agent.MakeDecision(promptState(), promptActions)

			assert.Equal(t, tt.want.Action, got.Action)
			assert.Equal(t, tt.want.Amount, got.Amount)
		})
	}
}

func TestHumanAgentPrompt(t *testing.T) {
	var out bytes.Buffer
	agent := NewHumanAgent(strings.NewReader("shove\nfold\n"), plainTheme(&out))

	agent.MakeDecision(promptState(), promptActions)
	agent.Rejected(game.Decision{Action: game.Bet, Amount: 500}, game.ErrInvalidWager)

	text := out.String()
	assert.Contains(t, text, "Alice to act")
	assert.Contains(t, text, "A♠ K♥")
	assert.Contains(t, text, "2♠ 7♦ 9♣")
	assert.Contains(t, text, "To call:    20")
	assert.Contains(t, text, "fold, call 20, bet 20-100")
	assert.Contains(t, text, "invalid action")
	assert.Contains(t, text, "Cannot bet: invalid wager")
	assert.NotContains(t, text, "Bob's cards")
}

func TestRendererEvents(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(plainTheme(&out), nil, false)
	bus := game.NewEventBus()
	bus.Subscribe(r)

	previous := &game.HandResult{Winner: "Bob", Pot: 40, HandClass: "Flush"}
	players := []game.PlayerState{
		{Name: "Alice", Chips: 100, Active: true},
		{Name: "Bob", Chips: 0, Eliminated: true},
	}
	bus.Publish(game.NewHandStartEvent("id", 2, players, previous))
	bus.Publish(game.NewPhaseEvent(game.Flop, deck.MustParseCards("2s7d9c"), 0, players, true))
	bus.Publish(game.NewPlayerActionEvent("Alice", game.Bet, 20, game.Flop, "", 20, 80))
	bus.Publish(game.NewPlayerActionEvent("Carol", game.Call, 20, game.Flop, "", 40, 0))
	bus.Publish(game.NewPhaseEvent(game.Turn, deck.MustParseCards("2s7d9cJh"), 40, players, false))
	bus.Publish(game.NewHandEndEvent(game.HandResult{Winner: "Alice", Pot: 40, HandClass: "Pair", Showdown: true, Contenders: []string{"Alice", "Carol"}}))
	bus.Publish(game.NewSessionEndEvent(game.SessionResult{Winner: "Alice", Hands: 2, Standings: players}))

	text := out.String()
	for _, want := range []string{
		"Last hand: Bob won 40 chips with Flush",
		"Hand #2",
		"(out)",
		"*** FLOP ***",
		"Alice bets 20",
		"Carol calls 20 and is all-in",
		"No betting",
		"Showdown: Alice, Carol",
		"Alice wins 40 chips with Pair",
		"Alice wins the game after 2 hands",
	} {
		assert.Contains(t, text, want)
	}
}

func TestPacerWaitsForClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	pacer := NewPacer(mockClock, 2*time.Second)

	done := make(chan struct{})
	go func() {
		pacer.Pause()
		close(done)
	}()

	// Wait for the pause to arm its timer
	require.Eventually(t, func() bool {
		d, ok := mockClock.Peek()
		return ok && d == 2*time.Second
	}, time.Second, time.Millisecond)

	select {
	case <-done:
		t.Fatal("pause returned before the delay elapsed")
	default:
	}

	mockClock.Advance(2 * time.Second).MustWait(ctx)

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("pause did not return after the delay")
	}
}

func TestPacerStop(t *testing.T) {
	mockClock := quartz.NewMock(t)
	pacer := NewPacer(mockClock, time.Minute)

	done := make(chan struct{})
	go func() {
		pacer.Pause()
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := mockClock.Peek()
		return ok
	}, time.Second, time.Millisecond)

	pacer.Stop()
	pacer.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pause did not return after Stop")
	}
}

func TestPacerZeroDelay(t *testing.T) {
	mockClock := quartz.NewMock(t)
	NewPacer(mockClock, 0).Pause()

	_, ok := mockClock.Peek()
	assert.False(t, ok, "zero delay should not arm a timer")

	var nilPacer *Pacer
	nilPacer.Pause()
}
