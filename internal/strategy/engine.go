// Package strategy scores intraday indicators into a BUY/SELL/HOLD call.
package strategy

import (
	"fmt"

	"TradeCraft/internal/model"
)

// Factor is one weighted contribution to the total score.
type Factor struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Verdict is the result of Evaluate.
type Verdict struct {
	Factors    []Factor       `json:"factors"`
	TotalScore float64        `json:"total_score"`
	Decision   model.Decision `json:"decision"`
	Reasoning  []string       `json:"reasoning"`
}

// Scores at or beyond these thresholds turn into a directional call.
const (
	BuyThreshold  = 0.35
	SellThreshold = -0.35
)

// mapDecision maps a total score to a decision.
func mapDecision(total float64) model.Decision {
	switch {
	case total >= BuyThreshold:
		return model.DecisionBuy
	case total <= SellThreshold:
		return model.DecisionSell
	default:
		return model.DecisionHold
	}
}

// Evaluate scores price against the indicator set.
func Evaluate(price float64, ind model.IndicatorData) Verdict {
	factors := []Factor{
		scoreEMATrend(price, ind.EMA20),
		scoreRSI(ind.RSI14),
		scoreVWAP(price, ind.VWAP),
		scoreMACD(ind.MACD),
		scoreBollinger(price, ind.Bollinger),
	}

	v := Verdict{Factors: factors}
	for _, f := range factors {
		v.TotalScore += f.Weighted
		if f.RawScore != 0 {
			v.Reasoning = append(v.Reasoning, fmt.Sprintf("%s: %s", f.Name, f.Commentary))
		}
	}
	v.Decision = mapDecision(v.TotalScore)
	if len(v.Reasoning) == 0 {
		v.Reasoning = []string{"No directional edge"}
	}
	return v
}
