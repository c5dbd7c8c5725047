package collector

import (
	"context"

	"TradeCraft/internal/model"
)

// Fetcher defines the interface for reading the market-analysis API.
type Fetcher interface {
	Analyze(ctx context.Context, symbol string) (*model.AnalyzeResult, error)
	AdvancedAnalyze(ctx context.Context, symbol string) (*model.AdvancedAnalysis, error)
	// Checkpoints returns the day's board; an empty date means today on the server side.
	Checkpoints(ctx context.Context, symbol, date string) (*model.CheckpointBoard, error)
	Name() string
}
