package calculator

import (
	"math"
	"testing"
	"time"

	"TradeCraft/internal/model"
)

var t0 = time.Date(2026, 2, 20, 9, 15, 0, 0, time.UTC)

func barsFromCloses(closes []float64) []model.OHLC {
	bars := make([]model.OHLC, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLC{
			Time:  t0.Add(time.Duration(i) * 3 * time.Minute),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return bars
}

func alternating(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 10
		} else {
			closes[i] = 20
		}
	}
	return closes
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

func TestEMAOverlay_TooFewBars(t *testing.T) {
	for _, n := range []int{0, 1, 10, 19} {
		if got := EMAOverlay(barsFromCloses(alternating(n))); len(got) != 0 {
			t.Errorf("n=%d: expected empty overlay, got %d points", n, len(got))
		}
	}
}

func TestEMAOverlay_Cardinality(t *testing.T) {
	for _, n := range []int{20, 21, 57, 120} {
		bars := barsFromCloses(alternating(n))
		got := EMAOverlay(bars)
		if len(got) != n-19 {
			t.Fatalf("n=%d: expected %d points, got %d", n, n-19, len(got))
		}
		for i, p := range got {
			if !p.Time.Equal(bars[i+19].Time) {
				t.Errorf("n=%d point %d: time %v, want %v", n, i, p.Time, bars[i+19].Time)
			}
		}
	}
}

func TestEMAOverlay_AlternatingReference(t *testing.T) {
	// Seed 10, k = 2/21, recursion applied from bar 0 through bar 19:
	// ema(19) = 14.5406747... -> 14.54
	got := EMAOverlay(barsFromCloses(alternating(20)))
	if len(got) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got))
	}
	assertClose(t, "ema[19]", got[0].Value, 14.54, 1e-9)

	// Continue the same series a few bars.
	want := []float64{14.54, 14.11, 14.67, 14.22, 14.77, 14.32}
	got = EMAOverlay(barsFromCloses(alternating(25)))
	for i, w := range want {
		assertClose(t, "ema", got[i].Value, w, 1e-9)
	}
}

func TestEMAOverlay_ConstantSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 22450.35
	}
	for _, p := range EMAOverlay(barsFromCloses(closes)) {
		assertClose(t, "constant", p.Value, 22450.35, 1e-9)
	}
}

func TestEMAOverlay_Deterministic(t *testing.T) {
	bars := barsFromCloses(alternating(40))
	a := EMAOverlay(bars)
	b := EMAOverlay(bars)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEMAOverlayPeriod_InvalidPeriod(t *testing.T) {
	bars := barsFromCloses(alternating(30))
	if got := EMAOverlayPeriod(bars, 0); got != nil {
		t.Errorf("period 0: expected nil, got %v", got)
	}
	if got := EMAOverlayPeriod(bars, -3); got != nil {
		t.Errorf("negative period: expected nil, got %v", got)
	}
}

func TestRound2_HalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.13},
		{2.3449, 2.34},
		{2.3451, 2.35},
		{100, 100},
	}
	for _, tt := range tests {
		assertClose(t, "round2", round2(tt.in), tt.want, 1e-9)
	}
}
