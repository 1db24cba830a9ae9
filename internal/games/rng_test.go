package games_test

import (
	"testing"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
)

func TestNewSourceIsDeterministic(t *testing.T) {
	a := games.NewSource(42)
	b := games.NewSource(42)
	for i := 0; i < 100; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestSequenceWraps(t *testing.T) {
	seq := games.NewSequence(0.1, 0.2)
	want := []float64{0.1, 0.2, 0.1}
	for i, w := range want {
		if got := seq.Float64(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestIntnBounds(t *testing.T) {
	tests := []struct {
		u    float64
		n    int
		want int
	}{
		{0, 6, 0},
		{0.5, 6, 3},
		{0.9999999, 6, 5},
		{1, 6, 5},
		{0.3, 1, 0},
	}
	for _, tt := range tests {
		if got := games.Intn(games.NewSequence(tt.u), tt.n); got != tt.want {
			t.Errorf("Intn(%v, %d) = %d, want %d", tt.u, tt.n, got, tt.want)
		}
	}
}

func TestIntRangeInclusive(t *testing.T) {
	if got := games.IntRange(games.NewSequence(0), 1, 100); got != 1 {
		t.Errorf("low draw = %d, want 1", got)
	}
	if got := games.IntRange(games.NewSequence(0.99999), 1, 100); got != 100 {
		t.Errorf("high draw = %d, want 100", got)
	}
}
