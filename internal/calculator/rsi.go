package calculator

import (
	"errors"

	"TradeCraft/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI of the bar closes.
// With fewer than period+1 bars the neutral 50 is returned.
func CalculateRSI(bars []model.OHLC, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 50.0, nil
	}

	closes := extractCloses(bars)
	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		gain, loss := splitChange(closes[i] - closes[i-1])
		if i <= period {
			avgGain += gain / float64(period)
			avgLoss += loss / float64(period)
			continue
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	return round2(100.0 - 100.0/(1.0+avgGain/avgLoss)), nil
}

func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

// CalculateMACD returns the 12/26 MACD line, its 9-period signal and the histogram.
func CalculateMACD(bars []model.OHLC) (model.MACD, error) {
	const fast, slow, sig = 12, 26, 9
	if len(bars) < slow+sig {
		return model.MACD{}, errors.New("not enough data for MACD calculation")
	}
	closes := extractCloses(bars)
	fastLine := emaSeries(closes, fast)
	slowLine := emaSeries(closes, slow)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fastLine[i] - slowLine[i]
	}
	signal := emaSeries(macd[slow-1:], sig)

	line := macd[len(macd)-1]
	s := signal[len(signal)-1]
	return model.MACD{Line: round2(line), Signal: round2(s), Histogram: round2(line - s)}, nil
}

// emaSeries is the conventional EMA seeded with the first value.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	k := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}
