package phh_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-knockout/internal/bot"
	"github.com/lox/holdem-knockout/internal/deck"
	"github.com/lox/holdem-knockout/internal/evaluator"
	"github.com/lox/holdem-knockout/internal/game"
	"github.com/lox/holdem-knockout/internal/phh"
)

func decodeHand(t *testing.T, path string) phh.HandHistory {
	t.Helper()
	var hand phh.HandHistory
	if _, err := toml.DecodeFile(path, &hand); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return hand
}

func TestRecorderWritesHand(t *testing.T) {
	dir := t.TempDir()
	rec := phh.NewRecorder(dir, "session-1", log.New(io.Discard))

	board := deck.MustParseCards("2s7d9cJhKs")
	players := []game.PlayerState{
		{Name: "Alice", Chips: 100, Active: true},
		{Name: "Carol", Eliminated: true},
		{Name: "Bob", Chips: 100, Active: true},
	}

	rec.OnEvent(game.NewHandStartEvent("abc", 3, players, nil))
	rec.OnEvent(game.NewPhaseEvent(game.Flop, board[:3], 0, players, true))
	rec.OnEvent(game.NewPlayerActionEvent("Alice", game.Bet, 10, game.Flop, "", 10, 90))
	rec.OnEvent(game.NewPlayerActionEvent("Bob", game.Call, 10, game.Flop, "", 20, 90))
	rec.OnEvent(game.NewPhaseEvent(game.Turn, board[:4], 20, players, true))
	rec.OnEvent(game.NewPhaseEvent(game.River, board, 20, players, true))
	rec.OnEvent(game.NewHandEndEvent(game.HandResult{
		HandID:     "abc",
		HandNumber: 3,
		Winner:     "Bob",
		Pot:        20,
		Showdown:   true,
		Shown: []game.ShownHand{
			{Name: "Alice", HoleCards: deck.MustParseCards("AsAd")},
			{Name: "Bob", HoleCards: deck.MustParseCards("KdKc")},
		},
	}))

	if err := rec.Err(); err != nil {
		t.Fatalf("recorder error: %v", err)
	}
	written := rec.Written()
	if len(written) != 1 || written[0] != filepath.Join(dir, "hand-0003.phh") {
		t.Fatalf("unexpected files: %v", written)
	}

	hand := decodeHand(t, written[0])
	wantActions := []string{
		"d dh p1 ????", "d dh p2 ????",
		"d db 2s7d9c", "p1 cbr 10", "p2 cc",
		"d db Jh", "d db Ks",
		"p1 sm AsAd", "p2 sm KdKc",
	}
	if !reflect.DeepEqual(hand.Actions, wantActions) {
		t.Errorf("actions = %q", hand.Actions)
	}
	if !reflect.DeepEqual(hand.Players, []string{"Alice", "Bob"}) {
		t.Errorf("players = %v, eliminated seats should be left out", hand.Players)
	}
	if !reflect.DeepEqual(hand.FinishingStacks, []int{90, 110}) {
		t.Errorf("finishing stacks = %v", hand.FinishingStacks)
	}
	if !reflect.DeepEqual(hand.Winnings, []int{0, 20}) {
		t.Errorf("winnings = %v", hand.Winnings)
	}
	if hand.Variant != "NT" || hand.Table != "session-1" || hand.HandID != "abc" || hand.SeatCount != 2 {
		t.Errorf("unexpected header: %+v", hand)
	}
}

func TestRecorderSession(t *testing.T) {
	// The same deal every hand: Bob's kings fill up and take 6 chips a hand
	// until Alice shoves her last chip on hand four
	cards := deck.MustParseCards("AsAd KdKc 2s7d9c Jh Ks")
	cfg := game.SessionConfig{PlayerNames: []string{"Alice", "Bob"}, StartingChips: 10}
	logger := log.New(io.Discard)
	agents := map[string]game.Agent{
		"Alice": bot.NewCallBot(logger),
		"Bob":   bot.NewCallBot(logger),
	}

	session, err := game.NewSession(cfg, evaluator.New(), agents, logger,
		game.WithDeckFactory(func() game.CardSource { return deck.NewStacked(cards...) }))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	dir := t.TempDir()
	rec := phh.NewRecorder(dir, session.ID(), logger)
	session.EventBus().Subscribe(rec)

	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Winner != "Bob" || result.Hands != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}

	written := rec.Written()
	if len(written) != 4 {
		t.Fatalf("expected 4 hand files, got %v", written)
	}

	last := decodeHand(t, written[3])
	if !reflect.DeepEqual(last.StartingStacks, []int{1, 19}) {
		t.Errorf("starting stacks = %v", last.StartingStacks)
	}
	if !reflect.DeepEqual(last.FinishingStacks, []int{0, 20}) {
		t.Errorf("finishing stacks = %v", last.FinishingStacks)
	}
	if last.Table != session.ID() {
		t.Errorf("table = %q", last.Table)
	}
}

func TestRecorderReportsWriteErrors(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	rec := phh.NewRecorder(filepath.Join(blocked, "hands"), "t", log.New(io.Discard))
	players := []game.PlayerState{{Name: "Alice", Chips: 10}, {Name: "Bob", Chips: 10}}
	rec.OnEvent(game.NewHandStartEvent("x", 1, players, nil))
	rec.OnEvent(game.NewHandEndEvent(game.HandResult{HandID: "x", HandNumber: 1, Winner: "Alice"}))

	if rec.Err() == nil {
		t.Fatal("expected a write error")
	}
	if len(rec.Written()) != 0 {
		t.Errorf("nothing should be recorded as written: %v", rec.Written())
	}
}
