// retest-sentinel scans a stock universe for 200-day moving-average
// breakout/retest setups and opens paper positions on confirmed bounces.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RetestSentinel/internal/config"
	"RetestSentinel/internal/logging"
	"RetestSentinel/internal/notifier"
	"RetestSentinel/internal/universe"
)

var (
	version  = "0.1.0"
	cfgPath  string
	logLevel string
	pretty   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "retest-sentinel",
		Short:         "200-day MA breakout/retest scanner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultCfg, "Path to config file (defaults to CONFIG_PATH env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human-readable console logs")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(universeCmd())
	rootCmd.AddCommand(positionsCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the config and sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logging.Setup(cfg.Log.Level, pretty || cfg.Log.Pretty)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the scan scheduler and Telegram command polling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log.Info().Str("version", version).Msg("RetestSentinel starting")

			// Context for graceful shutdown
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.sched.Register(cfg.Schedule.ScanCron); err != nil {
				return err
			}
			a.sched.Start()
			defer a.sched.Stop()

			if tn, ok := a.notifier.(*notifier.TelegramNotifier); ok {
				go tn.StartPolling(ctx, a.sched.HandleCommand)
				log.Info().Msg("telegram polling started")
			}

			log.Info().Str("cron", cfg.Schedule.ScanCron).Msg("RetestSentinel is running. Press Ctrl+C to stop.")
			<-ctx.Done()
			log.Info().Msg("shutdown signal received, stopping...")
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	var execute bool
	cmd := &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Scan the given symbols (or the universe) once and print signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			symbols := a.sched.Symbols
			if len(args) > 0 {
				symbols = upperAll(args)
			}
			res, err := a.sched.Scan(ctx, symbols)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scanned %d/%d symbols, %d skipped, %d signal(s)\n",
				res.Run.Scanned, res.Run.Symbols, res.Run.Skipped, len(res.Signals))
			for _, s := range res.Signals {
				fmt.Fprintf(out, "%-5s %-6s entry %.2f stop %.2f target %.2f (breakout %s, retest %s)\n",
					s.Direction, s.Symbol, s.Entry, s.Stop, s.Target,
					s.BreakoutDate.Format("2006-01-02"), s.RetestDate.Format("2006-01-02"))
			}
			if execute {
				orders := a.sched.Execute(ctx, res.Run.ID, res.Signals)
				for _, o := range orders {
					fmt.Fprintf(out, "paper order %s: %s %d %s\n", o.ID, o.Side, o.Shares, o.Symbol)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "Size and open paper positions for the signals found")
	return cmd
}

func universeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "universe",
		Short: "Write the curated default symbol list to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := universe.DefaultSymbols()
			if err := universe.Save(out, symbols); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d tickers to %s\n", len(symbols), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "stocks.txt", "Output file")
	return cmd
}

func positionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "List open paper positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			positions := store.List()
			out := cmd.OutOrStdout()
			if len(positions) == 0 {
				fmt.Fprintln(out, "no open positions")
				return nil
			}
			for _, p := range positions {
				fmt.Fprintf(out, "%-5s %-6s x%-5d entry %.2f stop %.2f target %.2f opened %s\n",
					p.Direction, p.Symbol, p.Shares, p.Entry, p.Stop, p.Target, p.OpenedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "retest-sentinel version %s\n", version)
		},
	}
}
