package calculator

import (
	"math"

	"TradeCraft/internal/model"
)

// OverlayPeriod is the EMA period drawn over the price chart.
const OverlayPeriod = 20

// EMAOverlay computes the 20-period EMA line drawn over the candlestick chart.
// See EMAOverlayPeriod for the exact recursion.
func EMAOverlay(bars []model.OHLC) []model.EMAPoint {
	return EMAOverlayPeriod(bars, OverlayPeriod)
}

// EMAOverlayPeriod computes an EMA line with smoothing k = 2/(period+1).
//
// The recursion is seeded with the first close and then applied to every bar
// starting at bar 0, so bar 0 is folded in on top of its own seed. Points are
// emitted only from index period-1 onward, rounded to 2 decimal places. Fewer
// than period bars yields no line at all.
func EMAOverlayPeriod(bars []model.OHLC, period int) []model.EMAPoint {
	if period <= 0 || len(bars) < period {
		return nil
	}

	k := 2.0 / float64(period+1)
	ema := bars[0].Close
	points := make([]model.EMAPoint, 0, len(bars)-period+1)
	for i, b := range bars {
		ema = b.Close*k + ema*(1-k)
		if i >= period-1 {
			points = append(points, model.EMAPoint{Time: b.Time, Value: round2(ema)})
		}
	}
	return points
}

// round2 rounds half up to 2 decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func extractCloses(bars []model.OHLC) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
