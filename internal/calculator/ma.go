package calculator

import (
	"errors"
	"math"

	"TradeCraft/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateBollinger returns the SMA-centred band width mult standard deviations.
func CalculateBollinger(bars []model.OHLC, period int, mult float64) (model.Bollinger, error) {
	closes := extractCloses(bars)
	mid, err := CalculateSMA(closes, period)
	if err != nil {
		return model.Bollinger{}, err
	}
	var sq float64
	for _, c := range closes[len(closes)-period:] {
		sq += (c - mid) * (c - mid)
	}
	sd := math.Sqrt(sq / float64(period))
	return model.Bollinger{
		Upper:  round2(mid + mult*sd),
		Middle: round2(mid),
		Lower:  round2(mid - mult*sd),
	}, nil
}

// CalculateVWAP approximates VWAP with equal weights on the typical price,
// since bars carry no volume.
func CalculateVWAP(bars []model.OHLC) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	var sum float64
	for _, b := range bars {
		sum += (b.High + b.Low + b.Close) / 3
	}
	return round2(sum / float64(len(bars))), nil
}
