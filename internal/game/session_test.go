package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/evaluator"
)

func TestSessionConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SessionConfig
		wantErr bool
	}{
		{"valid", SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 100}, false},
		{"one player", SessionConfig{PlayerNames: []string{"Alice"}, StartingChips: 100}, true},
		{"no players", SessionConfig{StartingChips: 100}, true},
		{"zero chips", SessionConfig{PlayerNames: []string{"Alice", "Bob"}}, true},
		{"blank name", SessionConfig{PlayerNames: []string{"Alice", "  "}, StartingChips: 100}, true},
		{"duplicate name", SessionConfig{PlayerNames: []string{"Alice", "Alice"}, StartingChips: 100}, true},
		{"negative hand limit", SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 100, MaxHands: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSessionRejectsMissingAgent(t *testing.T) {
	cfg := SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 100}
	_, err := NewSession(cfg, evaluator.New(), map[string]Agent{"Alice": &AlwaysFoldAgent{}}, log.New(io.Discard))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestSessionRunsToSingleWinner(t *testing.T) {
	// Alice moves all-in on the flop; Bob's three kings take every chip
	cfg := SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 100}
	bus := NewEventBus()
	recorder := &eventRecorder{}
	bus.Subscribe(recorder)

	s, err := NewSession(cfg, evaluator.New(), map[string]Agent{
		"Alice": NewMockAgent(bet(100)),
		"Bob":   &AlwaysCallAgent{},
	}, log.New(io.Discard),
		WithDeckFactory(stackedDecks("AsAd KdKc 2s7d9c Jh Ks")),
		WithSessionEventBus(bus))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Winner != "Bob" {
		t.Errorf("expected Bob to win the session, got %q", result.Winner)
	}
	if result.Hands != 1 {
		t.Errorf("expected the session to stop after 1 hand, got %d", result.Hands)
	}
	if result.SessionID != s.ID() {
		t.Errorf("result session ID %s does not match %s", result.SessionID, s.ID())
	}
	if len(result.Standings) != 2 || result.Standings[0].Chips != 0 || result.Standings[1].Chips != 200 {
		t.Errorf("unexpected standings: %+v", result.Standings)
	}

	last := recorder.events[len(recorder.events)-1]
	if ev, ok := last.(SessionEndEvent); !ok || ev.Result.Winner != "Bob" {
		t.Errorf("expected session end event last, got %T", last)
	}
}

func TestSessionHandLimit(t *testing.T) {
	cfg := SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 100, MaxHands: 3, Seed: 7}
	s, err := NewSession(cfg, evaluator.New(), map[string]Agent{
		"Alice": &AlwaysFoldAgent{},
		"Bob":   &AlwaysFoldAgent{},
	}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	result, err := s.Run(context.Background())
	if !errors.Is(err, ErrHandLimit) {
		t.Fatalf("expected ErrHandLimit, got %v", err)
	}
	if result == nil || result.Hands != 3 || result.Winner != "" {
		t.Errorf("unexpected partial result: %+v", result)
	}
	if s.Table().TotalChips() != 200 {
		t.Errorf("expected 200 chips in play, got %d", s.Table().TotalChips())
	}
}

func TestSessionStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hands := 0

	cfg := SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 100, Seed: 11}
	bus := NewEventBus()
	bus.Subscribe(EventSubscriberFunc(func(e GameEvent) {
		if e.EventType() == EventTypeHandEnd {
			hands++
			if hands == 2 {
				cancel()
			}
		}
	}))

	s, err := NewSession(cfg, evaluator.New(), map[string]Agent{
		"Alice": &AlwaysFoldAgent{},
		"Bob":   &AlwaysFoldAgent{},
	}, log.New(io.Discard), WithSessionEventBus(bus))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	result, err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Hands != 2 {
		t.Errorf("expected the in-progress hand to finish and stop after 2, got %d", result.Hands)
	}
}

func TestSessionSeedIsReproducible(t *testing.T) {
	play := func() []string {
		cfg := SessionConfig{PlayerNames: []string{"Alice", "Bob", "Carol"}, StartingChips: 50, Seed: 42, MaxHands: 200}
		var winners []string
		bus := NewEventBus()
		bus.Subscribe(EventSubscriberFunc(func(e GameEvent) {
			if ev, ok := e.(HandEndEvent); ok {
				winners = append(winners, ev.Result.Winner+" "+ev.Result.HandClass)
			}
		}))
		s, err := NewSession(cfg, evaluator.New(), map[string]Agent{
			"Alice": &AlwaysCallAgent{},
			"Bob":   &AlwaysCallAgent{},
			"Carol": &AlwaysCallAgent{},
		}, log.New(io.Discard), WithSessionEventBus(bus))
		if err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
		if _, err := s.Run(context.Background()); err != nil && !errors.Is(err, ErrHandLimit) {
			t.Fatalf("Run failed: %v", err)
		}
		return winners
	}

	first, second := play(), play()
	if len(first) == 0 {
		t.Fatal("expected at least one hand")
	}
	if len(first) != len(second) {
		t.Fatalf("same seed played %d and %d hands", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("hand %d differs: %q vs %q", i+1, first[i], second[i])
		}
	}
}
