package recorder

import (
	"time"

	"TradeCraft/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *model.Snapshot) error           { return nil }
func (n *NoopRecorder) RecordCheckpoints(_ *model.CheckpointBoard) error { return nil }
func (n *NoopRecorder) Recent(_ string, _ int) ([]SnapshotRow, error)    { return nil, nil }
func (n *NoopRecorder) Prune(_ time.Time) (int64, error)                 { return 0, nil }
func (n *NoopRecorder) Close() error                                     { return nil }
