package game

import (
	"errors"
	"testing"
)

func TestPlayerWager(t *testing.T) {
	tests := []struct {
		name      string
		chips     int
		amount    int
		wantErr   bool
		wantChips int
	}{
		{"within stack", 100, 20, false, 80},
		{"entire stack", 30, 30, false, 0},
		{"more than stack", 30, 50, true, 30},
		{"zero", 100, 0, true, 100},
		{"negative", 100, -5, true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Alice", tt.chips)
			got, err := p.Wager(tt.amount)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWager) {
					t.Fatalf("expected ErrInvalidWager, got %v", err)
				}
				if got != 0 {
					t.Errorf("rejected wager returned %d", got)
				}
				if p.Committed != 0 {
					t.Errorf("rejected wager committed %d chips", p.Committed)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.amount {
					t.Errorf("expected wager of %d, got %d", tt.amount, got)
				}
			}

			if p.Chips != tt.wantChips {
				t.Errorf("expected %d chips, got %d", tt.wantChips, p.Chips)
			}
			if p.Chips < 0 {
				t.Errorf("chips went negative: %d", p.Chips)
			}
		})
	}
}

func TestPlayerFoldIsIdempotent(t *testing.T) {
	once := NewPlayer("Alice", 100)
	once.Fold()

	twice := NewPlayer("Alice", 100)
	twice.Fold()
	twice.Fold()

	if once.String() != twice.String() || once.Active != twice.Active || once.Chips != twice.Chips {
		t.Errorf("folding twice differs from folding once: %+v vs %+v", once, twice)
	}
	if twice.IsContender() {
		t.Error("folded player should not be a contender")
	}
}

func TestPlayerElimination(t *testing.T) {
	p := NewPlayer("Alice", 10)
	if _, err := p.Wager(10); err != nil {
		t.Fatalf("Wager failed: %v", err)
	}

	if !p.IsEliminated() {
		t.Fatal("player with no chips should be eliminated")
	}
	if p.IsContender() {
		t.Error("player with no chips should not be a contender")
	}
	if !p.InShowdown() {
		t.Error("player who wagered their last chip should keep a claim on the pot")
	}

	p.ResetForNewHand()
	if p.Active {
		t.Error("eliminated player should be inactive after reset")
	}
	if p.InShowdown() {
		t.Error("eliminated player should not reach a later showdown")
	}

	// Elimination persists regardless of the flag's prior value
	p.Active = true
	p.ResetForNewHand()
	if p.Active {
		t.Error("eliminated player should stay inactive across hands")
	}
}

func TestPlayerResetForNewHand(t *testing.T) {
	p := NewPlayer("Alice", 100)
	p.HoleCards = append(p.HoleCards, testCards(t, "AsKs")...)
	if _, err := p.Wager(40); err != nil {
		t.Fatalf("Wager failed: %v", err)
	}
	p.Fold()

	p.ResetForNewHand()

	if !p.Active {
		t.Error("player with chips should be active after reset")
	}
	if len(p.HoleCards) != 0 {
		t.Errorf("expected hole cards cleared, got %v", p.HoleCards)
	}
	if p.Committed != 0 {
		t.Errorf("expected committed reset, got %d", p.Committed)
	}
	if p.Chips != 60 {
		t.Errorf("reset should not touch chips, got %d", p.Chips)
	}
}

func TestPlayerAward(t *testing.T) {
	p := NewPlayer("Alice", 0)
	p.Award(40)
	if p.Chips != 40 {
		t.Errorf("expected 40 chips, got %d", p.Chips)
	}
	if p.IsEliminated() {
		t.Error("player with chips should not be eliminated")
	}
}

func TestPlayerString(t *testing.T) {
	p := NewPlayer("Alice", 80)
	if got := p.String(); got != "Alice (80 chips)" {
		t.Errorf("unexpected string: %q", got)
	}
	p.HoleCards = append(p.HoleCards, testCards(t, "AsKd")...)
	if got := p.String(); got != "Alice (80 chips) A♠ K♦" {
		t.Errorf("unexpected string: %q", got)
	}
}
