package calculator

import (
	"errors"
	"math"

	"TradeCraft/internal/model"
)

// SessionRange scans all bars and returns the highest high and lowest low.
func SessionRange(bars []model.OHLC) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// LastClose returns the close of the most recent bar, or 0 when there are none.
func LastClose(bars []model.OHLC) float64 {
	closes := extractCloses(bars)
	if len(closes) == 0 {
		return 0
	}
	return closes[len(closes)-1]
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
func RangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
