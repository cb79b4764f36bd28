package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"RetestSentinel/internal/collector"
	"RetestSentinel/internal/config"
	"RetestSentinel/internal/notifier"
	"RetestSentinel/internal/position"
	"RetestSentinel/internal/recorder"
	"RetestSentinel/internal/scheduler"
	"RetestSentinel/internal/strategy"
	"RetestSentinel/internal/universe"
)

// app wires the collaborators shared by the run and scan commands.
type app struct {
	sched    *scheduler.Scheduler
	notifier notifier.Notifier
	recorder recorder.Recorder
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Int("lookback_days", cfg.DataSource.LookbackDays).Msg("data source")
	col := collector.NewCollector(fetcher, cfg.DataSource.LookbackDays)

	det, err := strategy.NewDetector(cfg.DetectorConfig())
	if err != nil {
		return nil, err
	}

	symbols, err := loadUniverse(cfg.Universe.Files)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	sizer := position.NewSizer(cfg.Account.Equity, cfg.Account.RiskPerTrade)

	// Init notifier
	var n notifier.Notifier
	if cfg.TelegramEnabled() {
		n = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Warn().Msg("telegram not configured, notifications are logged only")
		n = notifier.NewLogNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	loc, _ := time.LoadLocation(cfg.Schedule.Timezone)
	sched := scheduler.NewScheduler(ctx, col, det, store, sizer, n, rec, scheduler.Options{
		Symbols:   symbols,
		ScanDelay: cfg.Schedule.ScanDelay,
		Location:  loc,
	})
	return &app{sched: sched, notifier: n, recorder: rec}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Error().Err(err).Msg("close recorder")
	}
}

func openStore(cfg *config.Config) (*position.Store, error) {
	store, err := position.NewStore(cfg.Account.StateFile)
	if err != nil {
		return nil, fmt.Errorf("init position store: %w", err)
	}
	return store, nil
}

// loadUniverse reads the configured universe files. When the only file is
// missing it is seeded with the curated default list.
func loadUniverse(patterns []string) ([]string, error) {
	symbols, err := universe.Load(patterns...)
	if errors.Is(err, os.ErrNotExist) && len(patterns) == 1 {
		defaults := universe.DefaultSymbols()
		if err := universe.Save(patterns[0], defaults); err != nil {
			return nil, err
		}
		log.Info().Str("file", patterns[0]).Int("symbols", len(defaults)).Msg("seeded universe file")
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("universe %s is empty", strings.Join(patterns, ", "))
	}
	log.Info().Int("symbols", len(symbols)).Msg("universe loaded")
	return symbols, nil
}

func upperAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ToUpper(strings.TrimSpace(a))
	}
	return out
}
