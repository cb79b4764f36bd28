package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"RetestSentinel/internal/collector"
	"RetestSentinel/internal/logging"
	"RetestSentinel/internal/model"
	"RetestSentinel/internal/notifier"
	"RetestSentinel/internal/position"
	"RetestSentinel/internal/recorder"
	"RetestSentinel/internal/strategy"
)

// ErrScanInProgress is returned when a scan is requested while another runs.
var ErrScanInProgress = errors.New("scan already in progress")

// Options holds the non-collaborator settings of a Scheduler.
type Options struct {
	Symbols   []string
	ScanDelay time.Duration
	Location  *time.Location // exchange time zone
}

// Scheduler runs universe scans on a cron schedule and executes the signals.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Detector  *strategy.Detector
	Positions *position.Store
	Sizer     *position.Sizer
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	Symbols   []string
	ScanDelay time.Duration
	Location  *time.Location
	Now       func() time.Time

	scanning sync.Mutex
	log      zerolog.Logger
}

// ScanResult is the outcome of one pass over the universe.
type ScanResult struct {
	Run     *recorder.ScanRun
	Signals []*model.Signal
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, det *strategy.Detector,
	store *position.Store, sizer *position.Sizer, n notifier.Notifier, rec recorder.Recorder, opts Options) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Collector: col,
		Detector:  det,
		Positions: store,
		Sizer:     sizer,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
		Symbols:   opts.Symbols,
		ScanDelay: opts.ScanDelay,
		Location:  loc,
		Now:       time.Now,
		log:       logging.For("scheduler"),
	}
}

// Register adds the market-hours scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scheduledScan); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("symbols", len(s.Symbols)).Str("tz", s.Location.String()).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// IsMarketOpen reports whether t falls in regular trading hours,
// Monday to Friday 09:30-16:00 exchange time. Exchange holidays are not modelled.
func (s *Scheduler) IsMarketOpen(t time.Time) bool {
	t = t.In(s.Location)
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 9*60+30 && minutes <= 16*60
}

func (s *Scheduler) scheduledScan() {
	if !s.IsMarketOpen(s.Now()) {
		s.log.Debug().Msg("market closed, skipping scan")
		return
	}
	res, err := s.Scan(s.Ctx, s.Symbols)
	if err != nil {
		s.log.Warn().Err(err).Msg("scheduled scan")
		return
	}
	s.Execute(s.Ctx, res.Run.ID, res.Signals)
}

// Scan runs the detector over symbols, skipping those with an open position,
// a fetch error or too little history. The run is recorded; signals are
// recorded but not executed.
func (s *Scheduler) Scan(ctx context.Context, symbols []string) (*ScanResult, error) {
	if !s.scanning.TryLock() {
		return nil, ErrScanInProgress
	}
	defer s.scanning.Unlock()

	run := &recorder.ScanRun{
		ID:        uuid.NewString(),
		StartedAt: s.Now(),
		Symbols:   len(symbols),
		Outcomes:  make(map[string]int),
	}
	log := s.log.With().Str("run_id", run.ID).Logger()
	log.Info().Int("symbols", len(symbols)).Msg("scan started")

	minBars := s.Detector.Config().MAPeriod
	var signals []*model.Signal
	for i, symbol := range symbols {
		if ctx.Err() != nil {
			log.Warn().Msg("scan cancelled")
			break
		}
		if i > 0 && s.ScanDelay > 0 && !sleep(ctx, s.ScanDelay) {
			log.Warn().Msg("scan cancelled")
			break
		}
		if s.Positions.Has(symbol) {
			run.Skipped++
			continue
		}

		bars, err := s.Collector.Collect(ctx, symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("collect failed")
			run.Skipped++
			continue
		}
		if len(bars) < minBars {
			log.Warn().Str("symbol", symbol).Int("bars", len(bars)).Msg("insufficient history")
			run.Skipped++
			continue
		}

		res := s.Detector.Detect(bars)
		run.Scanned++
		run.Outcomes[string(res.Outcome)]++
		if !res.Found() {
			continue
		}
		sig := res.Signal
		signals = append(signals, sig)
		log.Info().Str("symbol", sig.Symbol).Str("direction", string(sig.Direction)).
			Float64("entry", sig.Entry).Float64("stop", sig.Stop).Float64("target", sig.Target).
			Msg("signal found")
		if err := s.Recorder.RecordSignal(run.ID, sig); err != nil {
			log.Error().Err(err).Msg("record signal")
		}
	}

	run.Signals = len(signals)
	run.FinishedAt = s.Now()
	if err := s.Recorder.RecordScan(run); err != nil {
		log.Error().Err(err).Msg("record scan")
	}
	log.Info().Int("scanned", run.Scanned).Int("skipped", run.Skipped).Int("signals", run.Signals).
		Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).Msg("scan finished")
	return &ScanResult{Run: run, Signals: signals}, nil
}

// Execute sizes each signal, opens a paper position, records the order and
// notifies. It returns the orders that were opened.
func (s *Scheduler) Execute(ctx context.Context, runID string, signals []*model.Signal) []*model.Order {
	if len(signals) == 0 {
		return nil
	}
	s.log.Info().Str("budget", s.Sizer.Budget().StringFixed(2)).Int("signals", len(signals)).Msg("executing signals")

	var orders []*model.Order
	for _, sig := range signals {
		shares := s.Sizer.Shares(sig.Risk)
		if shares <= 0 {
			s.log.Warn().Str("symbol", sig.Symbol).Float64("risk", sig.Risk).Msg("position size too small")
			continue
		}
		order := position.BuildOrder(sig, shares)
		if err := s.Positions.Open(position.FromOrder(sig, order)); err != nil {
			s.log.Warn().Err(err).Str("symbol", sig.Symbol).Msg("open position")
			continue
		}
		if err := s.Recorder.RecordOrder(runID, order); err != nil {
			s.log.Error().Err(err).Msg("record order")
		}
		s.log.Info().Str("symbol", order.Symbol).Str("side", string(order.Side)).Int64("shares", shares).
			Float64("entry", order.LimitPrice).Float64("stop", order.StopPrice).Float64("target", order.TakeProfit).
			Msg("paper position opened")
		s.trySend(ctx, notifier.FormatSignal(sig)+"\n\n"+notifier.FormatOrder(order))
		orders = append(orders, order)
	}
	return orders
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch strings.ToLower(fields[0]) {
	case "/scan":
		symbols := s.Symbols
		if len(fields) > 1 {
			symbols = upper(fields[1:])
		}
		res, err := s.Scan(ctx, symbols)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatScanSummary(res.Run, res.Signals)
	case "/positions":
		return notifier.FormatPositions(s.Positions.List())
	case "/close":
		if len(fields) != 2 {
			return "Usage: /close SYMBOL"
		}
		p, err := s.Positions.Close(strings.ToUpper(fields[1]))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("✅ Closed %s %s x%d", p.Direction, p.Symbol, p.Shares)
	default:
		return helpText
	}
}

const helpText = "Available commands:\n" +
	"• /scan [SYMBOL...] run a scan now (report only)\n" +
	"• /positions list open paper positions\n" +
	"• /close SYMBOL close a paper position\n" +
	"• /help show this message"

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.Notifier.Notify(ctx, text); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}

func upper(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		out[i] = strings.ToUpper(sym)
	}
	return out
}

// sleep waits for d and reports false if ctx was cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
