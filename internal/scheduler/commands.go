package scheduler

import (
	"context"
	"strings"

	"TradeCraft/internal/notifier"
	"TradeCraft/internal/symbol"
)

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Telegram appends @botname in group chats.
	cmd := strings.SplitN(fields[0], "@", 2)[0]

	switch cmd {
	case "/status":
		if s.Dashboard == nil {
			return notifier.FormatStatus(nil)
		}
		return notifier.FormatStatus(s.Dashboard.Snapshot())
	case "/refresh":
		if s.Dashboard == nil {
			return notifier.FormatStatus(nil)
		}
		if err := s.Dashboard.Refresh(ctx); err != nil {
			return "❌ Refresh failed: " + err.Error()
		}
		return notifier.FormatStatus(s.Dashboard.Snapshot())
	case "/symbol":
		if s.Symbols == nil {
			return notifier.FormatHelp()
		}
		if len(fields) < 2 {
			return "Selected: " + s.Symbols.Selected()
		}
		changed, err := s.Symbols.Select(fields[1])
		if err != nil {
			return "❌ " + err.Error()
		}
		if !changed {
			return "Already on " + fields[1]
		}
		idx, _ := symbol.Lookup(fields[1])
		return "✅ Switched to " + idx.Name
	case "/checkpoints":
		if s.Checkpoints == nil {
			return notifier.FormatHelp()
		}
		v := s.Checkpoints.View()
		return notifier.FormatCheckpoints(v.Symbol, v.Date, v.Panels)
	case "/videos":
		if s.Feed == nil {
			return notifier.FormatHelp()
		}
		st := s.Feed.State(ctx)
		return notifier.FormatVideos(st.Stats, st.Videos, st.UsedFallback)
	default:
		return notifier.FormatHelp()
	}
}
