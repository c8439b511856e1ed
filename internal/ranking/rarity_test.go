package ranking

import (
	"testing"
	"time"
)

func TestRarityAt(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		votes  int
		rating float64
		year   int
		want   int
	}{
		{"saturates for old obscure gem", 10, 9.0, 2026 - 90, 50},
		{"unknown year has no age component", 0, 0, 0, 30},
		{"blockbuster", 2_500_000, 8.8, 2010, 1},
		{"popular recent", 1_500_000, 8.5, 2010, 6},
		{"cult favourite", 75_000, 7.8, 1990, 30},
		{"classic gem", 30_000, 8.2, 1957, 43},
		{"vote boundary is exclusive", 20_000, 6.0, 2020, 30},
		{"just above boundary", 20_001, 6.0, 2020, 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RarityAt(tt.votes, tt.rating, tt.year, now); got != tt.want {
				t.Fatalf("RarityAt(%d, %.1f, %d) = %d, want %d", tt.votes, tt.rating, tt.year, got, tt.want)
			}
		})
	}
}

func TestRarityAgeMovesOneStepPerYear(t *testing.T) {
	levels := map[int]int{0: 0, 1: 1, 3: 2, 5: 3, 7: 4, 10: 5}
	for year := 1890; year <= 2026; year++ {
		before := RarityAt(5_000_000, 0, year, time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC))
		after := RarityAt(5_000_000, 0, year, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
		lb, okb := levels[before]
		la, oka := levels[after]
		if !okb || !oka {
			t.Fatalf("year %d: unexpected age components %d and %d", year, before, after)
		}
		if la-lb < 0 || la-lb > 1 {
			t.Fatalf("year %d: age component jumped from %d to %d", year, before, after)
		}
	}
}

func TestRarityUsesCurrentYear(t *testing.T) {
	year := time.Now().Year() - 90
	if got := Rarity(10, 9.0, year); got != MaxRarity {
		t.Fatalf("Rarity = %d, want %d", got, MaxRarity)
	}
}
