package strategy

import (
	"fmt"

	"TradeCraft/internal/model"
)

func weigh(name string, score, weight float64, commentary string) Factor {
	return Factor{Name: name, RawScore: score, Weight: weight, Weighted: score * weight, Commentary: commentary}
}

// scoreEMATrend scores the distance of price from EMA20.
// Weight: 0.30
func scoreEMATrend(price, ema float64) Factor {
	if ema == 0 {
		return weigh("EMA20 trend", 0, 0.30, "EMA20 unavailable")
	}
	dev := (price - ema) / ema * 100

	var score float64
	switch {
	case dev >= 0.3:
		score = 1.0
	case dev > 0:
		score = 0.5
	case dev <= -0.3:
		score = -1.0
	case dev < 0:
		score = -0.5
	}
	return weigh("EMA20 trend", score, 0.30, fmt.Sprintf("price %+.2f%% vs EMA20", dev))
}

// scoreRSI leans against stretched RSI readings.
// Weight: 0.25
func scoreRSI(rsi float64) Factor {
	var score float64
	switch {
	case rsi <= 30:
		score = 1.0
	case rsi <= 40:
		score = 0.5
	case rsi <= 60:
		score = 0
	case rsi <= 70:
		score = -0.5
	default:
		score = -1.0
	}
	return weigh("RSI14", score, 0.25, fmt.Sprintf("RSI=%.0f", rsi))
}

// scoreVWAP rewards price trading above VWAP.
// Weight: 0.20
func scoreVWAP(price, vwap float64) Factor {
	switch {
	case vwap == 0:
		return weigh("VWAP", 0, 0.20, "VWAP unavailable")
	case price > vwap:
		return weigh("VWAP", 1.0, 0.20, "price above VWAP")
	case price < vwap:
		return weigh("VWAP", -1.0, 0.20, "price below VWAP")
	}
	return weigh("VWAP", 0, 0.20, "price at VWAP")
}

// scoreMACD follows the sign of the histogram.
// Weight: 0.15
func scoreMACD(m model.MACD) Factor {
	switch {
	case m.Histogram > 0:
		return weigh("MACD", 1.0, 0.15, fmt.Sprintf("histogram %+.2f", m.Histogram))
	case m.Histogram < 0:
		return weigh("MACD", -1.0, 0.15, fmt.Sprintf("histogram %+.2f", m.Histogram))
	}
	return weigh("MACD", 0, 0.15, "flat")
}

// scoreBollinger fades touches of the outer bands.
// Weight: 0.10
func scoreBollinger(price float64, b model.Bollinger) Factor {
	switch {
	case b.Upper == 0 && b.Lower == 0:
		return weigh("Bollinger", 0, 0.10, "bands unavailable")
	case price <= b.Lower:
		return weigh("Bollinger", 1.0, 0.10, "at lower band")
	case price >= b.Upper:
		return weigh("Bollinger", -1.0, 0.10, "at upper band")
	}
	return weigh("Bollinger", 0, 0.10, "inside bands")
}
