package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"TradeCraft/internal/cache"
	"TradeCraft/internal/collector"
	"TradeCraft/internal/metrics"
	"TradeCraft/internal/model"
	"TradeCraft/internal/recorder"
	"TradeCraft/internal/symbol"
)

// BackendHint tells the developer how to start the analysis backend.
const BackendHint = "Backend: uvicorn main:app --reload --port 8000"

// Source builds a snapshot for a symbol; *collector.Collector satisfies it.
type Source interface {
	Collect(ctx context.Context, symbol string) (*model.Snapshot, error)
}

// Hook is called with every freshly collected snapshot.
type Hook func(ctx context.Context, snap *model.Snapshot)

// ErrorBanner is shown when a refresh fails.
type ErrorBanner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

// View is a copy of the dashboard state for rendering.
type View struct {
	Symbol      string          `json:"symbol"`
	Index       symbol.Index    `json:"index"`
	Loading     bool            `json:"loading"`
	Snapshot    *model.Snapshot `json:"snapshot,omitempty"`
	Badge       *Badge          `json:"badge,omitempty"`
	Market      *Banner         `json:"market_banner,omitempty"`
	Error       *ErrorBanner    `json:"error,omitempty"`
	LastRefresh time.Time       `json:"last_refresh,omitempty"`
}

// Dashboard holds the market dashboard state for the selected symbol.
type Dashboard struct {
	source  Source
	symbols *symbol.Store
	cache   cache.Cache
	rec     recorder.Recorder
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu          sync.RWMutex
	symbol      string
	loading     bool
	snap        *model.Snapshot
	banner      *ErrorBanner
	lastRefresh time.Time
	hooks       []Hook
}

// New creates a dashboard. cache and rec may be nil.
func New(src Source, symbols *symbol.Store, c cache.Cache, rec recorder.Recorder, m *metrics.Metrics, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Dashboard{
		source:  src,
		symbols: symbols,
		cache:   c,
		rec:     rec,
		metrics: m,
		logger:  logger.Named("dashboard"),
		symbol:  symbols.Selected(),
	}
}

// OnSnapshot registers a hook run after each successful refresh.
func (d *Dashboard) OnSnapshot(h Hook) {
	d.mu.Lock()
	d.hooks = append(d.hooks, h)
	d.mu.Unlock()
}

// Watch clears the dashboard whenever the selected symbol changes and
// triggers a refresh for the new one. Blocks until ctx is done.
func (d *Dashboard) Watch(ctx context.Context) {
	ch, unsubscribe := d.symbols.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case sym, ok := <-ch:
			if !ok {
				return
			}
			d.reset(sym)
			d.Refresh(ctx)
		}
	}
}

func (d *Dashboard) reset(sym string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.symbol == sym {
		return
	}
	d.symbol = sym
	d.snap = nil
	d.banner = nil
	d.logger.Info("symbol changed", zap.String("symbol", sym))
}

// Refresh collects a new snapshot for the selected symbol. On failure the
// previous snapshot is kept and the error banner is set; with no previous
// snapshot the last-good cached one is shown marked stale.
func (d *Dashboard) Refresh(ctx context.Context) error {
	sym := d.symbols.Selected()
	d.reset(sym)

	d.mu.Lock()
	d.loading = true
	d.banner = nil
	d.mu.Unlock()

	start := time.Now()
	snap, err := d.source.Collect(ctx, sym)
	d.metrics.ObserveRefresh("dashboard", time.Since(start).Seconds(), err)

	if err != nil {
		d.fail(ctx, sym, err)
		return err
	}

	d.mu.Lock()
	if d.symbol != sym {
		// Selection moved on while fetching; drop the result.
		d.loading = false
		d.mu.Unlock()
		return nil
	}
	d.snap = snap
	d.lastRefresh = time.Now()
	d.loading = false
	hooks := append([]Hook(nil), d.hooks...)
	d.mu.Unlock()
	d.metrics.SetStale(false)

	if d.cache != nil {
		if err := d.cache.Put(ctx, snap); err != nil {
			d.logger.Warn("cache snapshot", zap.String("symbol", sym), zap.Error(err))
		}
	}
	if err := d.rec.RecordSnapshot(snap); err != nil {
		d.logger.Error("record snapshot", zap.String("symbol", sym), zap.Error(err))
	}
	for _, h := range hooks {
		h(ctx, snap)
	}
	return nil
}

func (d *Dashboard) fail(ctx context.Context, sym string, err error) {
	d.logger.Warn("dashboard refresh failed", zap.String("symbol", sym), zap.Error(err))

	banner := &ErrorBanner{Title: "Failed to load data", Message: errorMessage(err), Hint: BackendHint}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if d.symbol != sym {
		return
	}
	d.banner = banner
	if d.snap != nil || d.cache == nil {
		return
	}

	cached, cerr := d.cache.Get(ctx, sym)
	if cerr != nil {
		if !errors.Is(cerr, cache.ErrMiss) {
			d.logger.Warn("read cached snapshot", zap.String("symbol", sym), zap.Error(cerr))
		}
		return
	}
	cached.Stale = true
	d.snap = cached
	d.metrics.SetStale(true)
}

// errorMessage prefers the backend's own message over the wrapping context.
func errorMessage(err error) string {
	var se *collector.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

// View returns a copy of the current state.
func (d *Dashboard) View() View {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v := View{
		Symbol:      d.symbol,
		Loading:     d.loading,
		LastRefresh: d.lastRefresh,
	}
	v.Index, _ = symbol.Lookup(d.symbol)
	if d.banner != nil {
		b := *d.banner
		v.Error = &b
	}
	if d.snap != nil {
		s := *d.snap
		v.Snapshot = &s
		if s.Analysis != nil {
			badge := DecisionBadge(s.Analysis.Decision)
			v.Badge = &badge
		}
		v.Market = MarketBanner(s.Advanced)
	}
	return v
}

// Snapshot returns the current snapshot or nil.
func (d *Dashboard) Snapshot() *model.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.snap == nil {
		return nil
	}
	s := *d.snap
	return &s
}
