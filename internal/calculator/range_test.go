package calculator

import "testing"

func TestSessionRange(t *testing.T) {
	bars := barsFromCloses([]float64{100, 104, 98, 101})
	high, low, err := SessionRange(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 105 || low != 97 {
		t.Errorf("expected 105/97, got %.2f/%.2f", high, low)
	}

	if _, _, err := SessionRange(nil); err == nil {
		t.Error("expected error for empty bars")
	}
}

func TestLastClose(t *testing.T) {
	if got := LastClose(nil); got != 0 {
		t.Errorf("expected 0 for no bars, got %v", got)
	}
	if got := LastClose(barsFromCloses([]float64{1, 2, 3})); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		price, high, low, want float64
	}{
		{50, 100, 0, 0.5},
		{150, 100, 0, 1},
		{-5, 100, 0, 0},
		{7, 7, 7, 0.5},
	}
	for _, tt := range tests {
		got, err := RangePosition(tt.price, tt.high, tt.low)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("RangePosition(%v,%v,%v) = %v, want %v", tt.price, tt.high, tt.low, got, tt.want)
		}
	}
	if _, err := RangePosition(1, 0, 10); err == nil {
		t.Error("expected error when high < low")
	}
}
