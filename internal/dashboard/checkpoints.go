package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"TradeCraft/internal/model"
	"TradeCraft/internal/recorder"
)

// BoardSymbols are the indices the checkpoint board can show.
var BoardSymbols = []string{"^NSEI", "^NSEBANK"}

// BoardSource reads the day's checkpoint board; collector.Fetcher satisfies it.
type BoardSource interface {
	Checkpoints(ctx context.Context, symbol, date string) (*model.CheckpointBoard, error)
}

// BoardView is a copy of the checkpoint board state.
type BoardView struct {
	Symbol        string                  `json:"symbol"`
	Date          string                  `json:"date"`
	Panels        []model.CheckpointPanel `json:"panels"`
	SignalClasses map[string]string       `json:"signal_classes"` // panel id -> buy/sell/neutral, captured panels only
	Populated     int                     `json:"populated"`
	Total         int                     `json:"total"`
	LastFetched   time.Time               `json:"last_fetched,omitempty"`
}

// CheckpointBoard tracks the seven daily checkpoint panels. It has its own
// symbol tab, independent of the dashboard selection.
type CheckpointBoard struct {
	source BoardSource
	rec    recorder.Recorder
	logger *zap.Logger

	mu          sync.RWMutex
	symbol      string
	date        string
	panels      []model.CheckpointPanel
	lastFetched time.Time
}

// NewCheckpointBoard creates a board on the first BoardSymbols tab with
// empty panels. rec may be nil.
func NewCheckpointBoard(src BoardSource, rec recorder.Recorder, logger *zap.Logger) *CheckpointBoard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &CheckpointBoard{
		source: src,
		rec:    rec,
		logger: logger.Named("checkpoints"),
		symbol: BoardSymbols[0],
		panels: emptyPanels(),
	}
}

func emptyPanels() []model.CheckpointPanel {
	panels := make([]model.CheckpointPanel, len(model.Checkpoints))
	for i, cp := range model.Checkpoints {
		panels[i] = model.CheckpointPanel{ID: cp.ID, Label: cp.Label, Time: cp.Time}
	}
	return panels
}

// SetTab switches the board symbol. Panels are cleared until the next refresh.
func (b *CheckpointBoard) SetTab(sym string) error {
	valid := false
	for _, s := range BoardSymbols {
		if s == sym {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("checkpoint board does not support %q", sym)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.symbol == sym {
		return nil
	}
	b.symbol = sym
	b.date = ""
	b.panels = emptyPanels()
	return nil
}

// Tab returns the symbol the board is showing.
func (b *CheckpointBoard) Tab() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.symbol
}

// Refresh fetches today's board. Failures are logged and leave the current
// panels in place.
func (b *CheckpointBoard) Refresh(ctx context.Context) {
	sym := b.Tab()
	board, err := b.source.Checkpoints(ctx, sym, "")
	if err != nil {
		b.logger.Debug("checkpoint refresh failed", zap.String("symbol", sym), zap.Error(err))
		return
	}

	b.mu.Lock()
	if b.symbol != sym {
		b.mu.Unlock()
		return
	}
	if len(board.Panels) > 0 {
		b.panels = board.Panels
	}
	b.date = board.Date
	b.lastFetched = time.Now()
	b.mu.Unlock()

	if board.Symbol == "" {
		board.Symbol = sym
	}
	if err := b.rec.RecordCheckpoints(board); err != nil {
		b.logger.Warn("record checkpoints", zap.Error(err))
	}
}

// View returns a copy of the board with the captured panels counted and
// their scalp signals classified.
func (b *CheckpointBoard) View() BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v := BoardView{
		Symbol:        b.symbol,
		Date:          b.date,
		Panels:        make([]model.CheckpointPanel, len(b.panels)),
		SignalClasses: make(map[string]string),
		Total:         len(model.Checkpoints),
		LastFetched:   b.lastFetched,
	}
	copy(v.Panels, b.panels)
	for _, p := range b.panels {
		if p.Data != nil {
			v.Populated++
			v.SignalClasses[p.ID] = SignalClass(p.Data.ScalpSignal)
		}
	}
	return v
}
