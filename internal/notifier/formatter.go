package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"TradeCraft/internal/model"
)

var decisionEmoji = map[model.Decision]string{
	model.DecisionBuy:  "🟢",
	model.DecisionSell: "🔴",
	model.DecisionHold: "🟡",
}

func emojiFor(d model.Decision) string {
	if e, ok := decisionEmoji[d]; ok {
		return e
	}
	return "🟡"
}

// FormatDecisionAlert formats a decision change into a Telegram message.
func FormatDecisionAlert(prev model.Decision, snap *model.Snapshot) string {
	var b strings.Builder
	a := snap.Analysis

	b.WriteString(fmt.Sprintf("%s <b>%s → %s</b> | %s\n\n", emojiFor(a.Decision), prev, a.Decision, snap.Symbol))
	b.WriteString(fmt.Sprintf("Price: %s\n", humanize.CommafWithDigits(a.Price, 2)))
	b.WriteString(fmt.Sprintf("RSI14: %.1f | EMA20: %.2f | VWAP: %.2f\n", a.Indicators.RSI14, a.Indicators.EMA20, a.Indicators.VWAP))
	b.WriteString(fmt.Sprintf("Session: %.2f – %.2f\n", snap.SessionLow, snap.SessionHigh))

	if len(a.Reasoning) > 0 {
		b.WriteString("\n<b>Reasoning:</b>\n")
		for _, r := range a.Reasoning {
			b.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	if adv := snap.Advanced; adv != nil && adv.OptionStrike != nil {
		st := adv.OptionStrike
		b.WriteString(fmt.Sprintf("\n🎯 %d %s (%s) ~₹%d | SL %d | TGT %d\n",
			st.Strike, st.OptionType, st.StrikeLabel, st.EstPremium, st.SLPoints, st.TargetPoints))
	}
	return b.String()
}

// FormatStatus formats the current snapshot for the /status command.
func FormatStatus(snap *model.Snapshot) string {
	if snap == nil || snap.Analysis == nil {
		return "⏳ No market data yet"
	}
	a := snap.Analysis
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", snap.Symbol, snap.FetchedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Decision: %s %s\n", emojiFor(a.Decision), a.Decision))
	b.WriteString(fmt.Sprintf("Price: %s\n", humanize.CommafWithDigits(a.Price, 2)))
	if n := len(snap.Overlay); n > 0 {
		b.WriteString(fmt.Sprintf("EMA overlay: %.2f\n", snap.Overlay[n-1].Value))
	}
	if adv := snap.Advanced; adv != nil {
		b.WriteString(fmt.Sprintf("Scalp: %s | Execute: %s\n", adv.ScalpSignal, adv.Execute))
		if !adv.IsMarketOpen && adv.MarketMessage != "" {
			b.WriteString(fmt.Sprintf("🌙 %s\n", adv.MarketMessage))
		}
	}
	if snap.Stale {
		b.WriteString(fmt.Sprintf("\n⚠️ cached data from %s\n", humanize.Time(snap.FetchedAt)))
	}
	return b.String()
}

// FormatVideos lists the latest videos for the /videos command.
func FormatVideos(stats model.ChannelStats, videos []model.Video, fallback bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎬 <b>Channel</b> | %s subscribers · %s videos · %s views\n\n",
		stats.SubscriberCount, stats.VideoCount, stats.ViewCount))
	for i, v := range videos {
		b.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, v.Title, v.PublishedAt))
	}
	if fallback {
		b.WriteString("\n(sample data)")
	}
	return b.String()
}

// FormatCheckpoints summarises the checkpoint board.
func FormatCheckpoints(symbol, date string, panels []model.CheckpointPanel) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕘 <b>Checkpoints</b> | %s %s\n\n", symbol, date))
	for _, p := range panels {
		if p.Data == nil {
			b.WriteString(fmt.Sprintf("%s %s: —\n", p.Time, p.Label))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s: %s @ %.2f\n", p.Time, p.Label, p.Data.ScalpSignal, p.Data.SpotPrice))
	}
	return b.String()
}

// FormatHelp lists the available chat commands.
func FormatHelp() string {
	return "Commands:\n• /status\n• /refresh\n• /symbol &lt;^NSEI|^NSEBANK|^BSESN&gt;\n• /checkpoints\n• /videos"
}

// formatTime is used for alert footers.
func formatTime(t time.Time) string {
	return t.Format("15:04:05")
}
