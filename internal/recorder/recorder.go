package recorder

import (
	"time"

	"RetestSentinel/internal/model"
)

// ScanRun summarises one pass over the universe.
type ScanRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Symbols    int // symbols attempted
	Scanned    int // symbols that reached the detector
	Skipped    int // held positions, fetch errors, short history
	Signals    int
	Outcomes   map[string]int // detector outcome -> count
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordScan(run *ScanRun) error
	RecordSignal(runID string, sig *model.Signal) error
	RecordOrder(runID string, order *model.Order) error
	Close() error
}
