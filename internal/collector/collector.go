package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TradeCraft/internal/calculator"
	"TradeCraft/internal/model"
)

// Collector orchestrates the analyze calls and derives the chart overlay.
type Collector struct {
	Fetcher Fetcher
	Logger  *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Fetcher: fetcher, Logger: logger.Named("collector")}
}

type analyzeOut struct {
	res *model.AnalyzeResult
	err error
}

type advancedOut struct {
	res *model.AdvancedAnalysis
	err error
}

// Collect fetches analyze and advanced-analyze in parallel and builds a snapshot.
// An analyze failure fails the whole collection; an advanced failure only
// leaves Advanced nil.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.Snapshot, error) {
	anCh := make(chan analyzeOut, 1)
	advCh := make(chan advancedOut, 1)

	go func() {
		res, err := c.Fetcher.Analyze(ctx, symbol)
		anCh <- analyzeOut{res, err}
	}()
	go func() {
		res, err := c.Fetcher.AdvancedAnalyze(ctx, symbol)
		advCh <- advancedOut{res, err}
	}()

	an := <-anCh
	adv := <-advCh

	if an.err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, an.err)
	}
	if an.res == nil {
		return nil, fmt.Errorf("analyze %s: empty response", symbol)
	}
	if adv.err != nil {
		c.Logger.Warn("advanced analysis unavailable", zap.String("symbol", symbol), zap.Error(adv.err))
	}

	snap := &model.Snapshot{
		Symbol:    symbol,
		Analysis:  an.res,
		Advanced:  adv.res,
		Overlay:   calculator.EMAOverlay(an.res.Candles),
		FetchedAt: time.Now(),
	}
	if snap.Analysis.Symbol != "" {
		snap.Symbol = snap.Analysis.Symbol
	}

	price := an.res.Price
	if price == 0 {
		price = calculator.LastClose(an.res.Candles)
	}
	if h, l, err := calculator.SessionRange(an.res.Candles); err != nil {
		c.Logger.Debug("session range unavailable", zap.String("symbol", symbol), zap.Error(err))
		snap.SessionHigh = price
		snap.SessionLow = price
	} else {
		snap.SessionHigh = h
		snap.SessionLow = l
	}
	if pos, err := calculator.RangePosition(price, snap.SessionHigh, snap.SessionLow); err == nil {
		snap.RangePosition = pos
	}

	return snap, nil
}
