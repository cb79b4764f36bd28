package recorder

import "RetestSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *ScanRun) error                   { return nil }
func (n *NoopRecorder) RecordSignal(_ string, _ *model.Signal) error { return nil }
func (n *NoopRecorder) RecordOrder(_ string, _ *model.Order) error   { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
