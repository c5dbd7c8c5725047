package dashboard

import (
	"testing"

	"TradeCraft/internal/model"
)

func TestDecisionBadge(t *testing.T) {
	tests := []struct {
		in    model.Decision
		emoji string
		class string
	}{
		{model.DecisionBuy, "🟢", "decision-buy"},
		{model.DecisionSell, "🔴", "decision-sell"},
		{model.DecisionHold, "🟡", "decision-hold"},
		{"", "🟡", "decision-hold"},
	}
	for _, tt := range tests {
		b := DecisionBadge(tt.in)
		if b.Emoji != tt.emoji || b.Class != tt.class {
			t.Errorf("%q: got %+v", tt.in, b)
		}
	}
	if DecisionBadge("").Label != "—" {
		t.Error("empty decision should render a dash")
	}
}

func TestSignalClass(t *testing.T) {
	tests := map[string]string{
		"🟢 BUY CE":   SignalBuy,
		"strong buy": SignalBuy,
		"🔴 SELL":     SignalSell,
		"🔴 PE":       SignalSell,
		"⚪ NO TRADE": SignalNeutral,
		"":           SignalNeutral,
	}
	for in, want := range tests {
		if got := SignalClass(in); got != want {
			t.Errorf("SignalClass(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestMarketBanner(t *testing.T) {
	if MarketBanner(nil) != nil {
		t.Error("absent data counts as open")
	}
	if MarketBanner(&model.AdvancedAnalysis{IsMarketOpen: true}) != nil {
		t.Error("open market should hide the banner")
	}
	b := MarketBanner(&model.AdvancedAnalysis{MarketMessage: "Opens Monday 09:15 IST"})
	if b == nil || b.Message != "Opens Monday 09:15 IST" {
		t.Errorf("unexpected banner %+v", b)
	}
}
