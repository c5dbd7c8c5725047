package dashboard

import (
	"strings"

	"TradeCraft/internal/model"
)

// Badge is the presentation of an intraday decision.
type Badge struct {
	Label   string `json:"label"`
	Emoji   string `json:"emoji"`
	Class   string `json:"class"`
	Subtext string `json:"subtext"`
}

// DecisionBadge maps a decision to its badge. Anything other than BUY or
// SELL, including an empty decision, renders as hold.
func DecisionBadge(d model.Decision) Badge {
	switch d {
	case model.DecisionBuy:
		return Badge{Label: "BUY", Emoji: "🟢", Class: "decision-buy",
			Subtext: "Bullish signals detected, consider a long entry"}
	case model.DecisionSell:
		return Badge{Label: "SELL", Emoji: "🔴", Class: "decision-sell",
			Subtext: "Bearish signals detected, consider a short entry"}
	}
	label := string(d)
	if label == "" {
		label = "—"
	}
	return Badge{Label: label, Emoji: "🟡", Class: "decision-hold",
		Subtext: "Mixed signals, stay flat and wait for clarity"}
}

// Signal classes used for checkpoint and scalp signal chips.
const (
	SignalBuy     = "buy"
	SignalSell    = "sell"
	SignalNeutral = "neutral"
)

// SignalClass classifies a free-form signal string such as "🟢 BUY CE".
func SignalClass(signal string) string {
	lower := strings.ToLower(signal)
	switch {
	case strings.Contains(lower, "buy") || strings.Contains(signal, "🟢"):
		return SignalBuy
	case strings.Contains(lower, "sell") || strings.Contains(signal, "🔴"):
		return SignalSell
	default:
		return SignalNeutral
	}
}

// Banner is the closed-market notice.
type Banner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Note    string `json:"note"`
}

// MarketBanner returns the notice to show, or nil when the market is open
// or no advanced analysis is available.
func MarketBanner(adv *model.AdvancedAnalysis) *Banner {
	if adv == nil || adv.IsMarketOpen {
		return nil
	}
	return &Banner{
		Title:   "Indian Market is Closed",
		Message: adv.MarketMessage,
		Note:    "Analysis based on Historical Data",
	}
}
