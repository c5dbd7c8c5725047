package collector

import (
	"context"
	"fmt"
	"time"

	"TradeCraft/internal/calculator"
	"TradeCraft/internal/model"
	"TradeCraft/internal/strategy"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price       float64
	Bars        int
	Start       time.Time
	Decision    model.Decision
	AnalyzeErr  error
	AdvancedErr error
	BoardErr    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Analyze(_ context.Context, symbol string) (*model.AnalyzeResult, error) {
	if m.AnalyzeErr != nil {
		return nil, m.AnalyzeErr
	}
	candles := generateMockBars(m.Price, m.barCount(), m.start())
	last := candles[len(candles)-1]
	ind := mockIndicators(candles)

	// Without a forced decision the call comes from scoring the mock indicators.
	verdict := strategy.Evaluate(last.Close, ind)
	decision := m.Decision
	if decision == "" {
		decision = verdict.Decision
	}
	return &model.AnalyzeResult{
		Symbol:     symbol,
		Price:      last.Close,
		Indicators: ind,
		Decision:   decision,
		Reasoning:  append([]string{fmt.Sprintf("Mock data for %s", symbol)}, verdict.Reasoning...),
		Timestamp:  last.Time,
		Candles:    candles,
	}, nil
}

func (m *MockFetcher) AdvancedAnalyze(_ context.Context, symbol string) (*model.AdvancedAnalysis, error) {
	if m.AdvancedErr != nil {
		return nil, m.AdvancedErr
	}
	return &model.AdvancedAnalysis{
		PromptVersion:   2,
		DateTime:        m.start().Format("2006-01-02 15:04"),
		Index:           symbol,
		SpotPrice:       m.Price,
		ScalpSignal:     "⚪ NO TRADE",
		ThreeMinConfirm: "⚪ NEUTRAL",
		HTFTrend:        "⚪ Sideways",
		TrendDirection:  "⚪ Sideways",
		Execute:         "NO TRADE",
		ExecuteReason:   "mock data",
		IsMarketOpen:    true,
	}, nil
}

func (m *MockFetcher) Checkpoints(_ context.Context, symbol, date string) (*model.CheckpointBoard, error) {
	if m.BoardErr != nil {
		return nil, m.BoardErr
	}
	if date == "" {
		date = m.start().Format("2006-01-02")
	}
	board := &model.CheckpointBoard{Date: date, Symbol: symbol, Meta: model.Checkpoints}
	for i, cp := range model.Checkpoints {
		p := model.CheckpointPanel{ID: cp.ID, Label: cp.Label, Time: cp.Time}
		// First two slots captured.
		if i < 2 {
			p.Data = &model.CheckpointData{
				CapturedAt:  date + "T" + cp.Time + ":00+05:30",
				SpotPrice:   m.Price,
				ScalpSignal: "⚪ NO TRADE",
				Execute:     []byte(`"NO TRADE"`),
			}
		}
		board.Panels = append(board.Panels, p)
	}
	return board, nil
}

func (m *MockFetcher) barCount() int {
	if m.Bars > 0 {
		return m.Bars
	}
	return 75
}

func (m *MockFetcher) start() time.Time {
	if !m.Start.IsZero() {
		return m.Start
	}
	return time.Date(2026, 2, 20, 3, 45, 0, 0, time.UTC)
}

// mockIndicators derives indicator values from the generated candles so the
// mock payload stays self-consistent.
func mockIndicators(candles []model.OHLC) model.IndicatorData {
	var ind model.IndicatorData
	if overlay := calculator.EMAOverlay(candles); len(overlay) > 0 {
		ind.EMA20 = overlay[len(overlay)-1].Value
	}
	ind.RSI14, _ = calculator.CalculateRSI(candles, 14)
	ind.VWAP, _ = calculator.CalculateVWAP(candles)
	ind.Bollinger, _ = calculator.CalculateBollinger(candles, 20, 2)
	ind.MACD, _ = calculator.CalculateMACD(candles)
	return ind
}

// generateMockBars builds 3-minute bars drifting gently around basePrice.
func generateMockBars(basePrice float64, count int, start time.Time) []model.OHLC {
	bars := make([]model.OHLC, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0005)
		bars[i] = model.OHLC{
			Time:  start.Add(time.Duration(i) * 3 * time.Minute),
			Open:  p * 0.999,
			High:  p * 1.002,
			Low:   p * 0.998,
			Close: p,
		}
	}
	return bars
}
