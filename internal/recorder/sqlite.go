package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"TradeCraft/internal/model"
)

// SQLiteRecorder persists snapshot history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read history while refreshes write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.Named("recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			price        REAL,
			decision     TEXT,
			rsi14        REAL,
			ema20        REAL,
			overlay_last REAL,
			session_high REAL,
			session_low  REAL,
			scalp_signal TEXT,
			execute      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_sym_ts ON snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS checkpoint_captures (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			date          TEXT NOT NULL,
			symbol        TEXT NOT NULL,
			checkpoint_id TEXT NOT NULL,
			spot_price    REAL,
			scalp_signal  TEXT,
			execute       TEXT,
			UNIQUE(date, symbol, checkpoint_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoint_ts ON checkpoint_captures(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *model.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	row := rowFromSnapshot(snap)

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO snapshots
		(timestamp, symbol, price, decision, rsi14, ema20, overlay_last,
		 session_high, session_low, scalp_signal, execute)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		row.Timestamp.Unix(), row.Symbol, row.Price, string(row.Decision),
		row.RSI14, row.EMA20, row.OverlayLast,
		row.SessionHigh, row.SessionLow, row.ScalpSignal, row.Execute,
	)
	return err
}

// RecordCheckpoints stores each captured panel once per day.
func (r *SQLiteRecorder) RecordCheckpoints(board *model.CheckpointBoard) error {
	if board == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, p := range board.Panels {
		if p.Data == nil {
			continue
		}
		_, err := r.db.Exec(`INSERT OR IGNORE INTO checkpoint_captures
			(timestamp, date, symbol, checkpoint_id, spot_price, scalp_signal, execute)
			VALUES (?,?,?,?,?,?,?)`,
			now, board.Date, board.Symbol, p.ID,
			p.Data.SpotPrice, p.Data.ScalpSignal, string(p.Data.Execute),
		)
		if err != nil {
			return fmt.Errorf("insert checkpoint %s: %w", p.ID, err)
		}
	}
	return nil
}

// Recent returns up to limit rows for symbol, newest first.
func (r *SQLiteRecorder) Recent(symbol string, limit int) ([]SnapshotRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`SELECT timestamp, symbol, price, decision, rsi14, ema20,
		overlay_last, session_high, session_low, scalp_signal, execute
		FROM snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var (
			row      SnapshotRow
			ts       int64
			decision string
		)
		if err := rows.Scan(&ts, &row.Symbol, &row.Price, &decision, &row.RSI14, &row.EMA20,
			&row.OverlayLast, &row.SessionHigh, &row.SessionLow, &row.ScalpSignal, &row.Execute); err != nil {
			return nil, err
		}
		row.Timestamp = time.Unix(ts, 0)
		row.Decision = model.Decision(decision)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Prune(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, table := range []string{"snapshots", "checkpoint_captures"} {
		res, err := r.db.Exec("DELETE FROM "+table+" WHERE timestamp < ?", before.Unix())
		if err != nil {
			return total, fmt.Errorf("prune %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
