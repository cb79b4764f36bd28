package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"RetestSentinel/internal/logging"
	"RetestSentinel/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so readers (reports, dashboards) don't block the scanner.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: logging.For("recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          TEXT PRIMARY KEY,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER,
			symbols     INTEGER,
			scanned     INTEGER,
			skipped     INTEGER,
			signals     INTEGER,
			outcomes    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id                TEXT NOT NULL,
			symbol                TEXT NOT NULL,
			direction             TEXT NOT NULL,
			entry                 REAL,
			stop                  REAL,
			target                REAL,
			risk                  REAL,
			reward                REAL,
			breakout_date         INTEGER,
			retest_date           INTEGER,
			signal_date           INTEGER,
			breakout_volume_ratio REAL,
			retest_volume_ratio   REAL,
			avg_volume            REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol, signal_date)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id          TEXT PRIMARY KEY,
			run_id      TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			side        TEXT NOT NULL,
			shares      INTEGER,
			limit_price REAL,
			stop_price  REAL,
			take_profit REAL,
			risk_amount REAL,
			created_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcomes, err := json.Marshal(run.Outcomes)
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}
	_, err = r.db.Exec(`INSERT OR REPLACE INTO scan_runs
		(id, started_at, finished_at, symbols, scanned, skipped, signals, outcomes)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Symbols, run.Scanned, run.Skipped, run.Signals, string(outcomes),
	)
	return err
}

func (r *SQLiteRecorder) RecordSignal(runID string, sig *model.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signals
		(run_id, symbol, direction, entry, stop, target, risk, reward,
		 breakout_date, retest_date, signal_date,
		 breakout_volume_ratio, retest_volume_ratio, avg_volume)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, sig.Symbol, string(sig.Direction),
		sig.Entry, sig.Stop, sig.Target, sig.Risk, sig.Reward,
		sig.BreakoutDate.Unix(), sig.RetestDate.Unix(), sig.CurrentDate.Unix(),
		sig.BreakoutVolumeRatio, sig.RetestVolumeRatio, sig.AvgVolume,
	)
	return err
}

func (r *SQLiteRecorder) RecordOrder(runID string, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO orders
		(id, run_id, symbol, side, shares, limit_price, stop_price, take_profit, risk_amount, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		order.ID, runID, order.Symbol, string(order.Side), order.Shares,
		order.LimitPrice, order.StopPrice, order.TakeProfit, order.RiskAmount,
		order.CreatedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
