package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"RetestSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Universe struct {
		Files []string `yaml:"files"`
	} `yaml:"universe"`
	Detector Detector `yaml:"detector"`
	Schedule struct {
		ScanCron  string        `yaml:"scan_cron"`
		Timezone  string        `yaml:"timezone"`
		ScanDelay time.Duration `yaml:"scan_delay"`
	} `yaml:"schedule"`
	Account struct {
		Equity       float64 `yaml:"equity"`
		RiskPerTrade float64 `yaml:"risk_per_trade"`
		StateFile    string  `yaml:"state_file"`
	} `yaml:"account"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Detector overrides strategy.Config thresholds. Zero values keep the defaults;
// VolumeConfirmation is a pointer so an explicit false is honoured.
type Detector struct {
	MAPeriod             int     `yaml:"ma_period"`
	RiskReward           float64 `yaml:"risk_reward"`
	Proximity            float64 `yaml:"proximity"`
	VolumeConfirmation   *bool   `yaml:"volume_confirmation"`
	VolumeSurge          float64 `yaml:"volume_surge"`
	VolumeDecay          float64 `yaml:"volume_decay"`
	VolumeBaselinePeriod int     `yaml:"volume_baseline_period"`
	RetestLookahead      int     `yaml:"retest_lookahead"`
	BreakoutLookback     int     `yaml:"breakout_lookback"`
	WindowSize           int     `yaml:"window_size"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults fill every unset field.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BARS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("UNIVERSE_FILES"); v != "" {
		cfg.Universe.Files = strings.Split(v, ",")
	}
	if v := os.Getenv("ACCOUNT_EQUITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Account.Equity = f
		}
	}
	if v := os.Getenv("RISK_PER_TRADE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Account.RiskPerTrade = f
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.LookbackDays == 0 {
		c.DataSource.LookbackDays = 250
	}
	if len(c.Universe.Files) == 0 {
		c.Universe.Files = []string{"stocks.txt"}
	}
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 */5 9-16 * * 1-5"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "America/New_York"
	}
	if c.Schedule.ScanDelay == 0 {
		c.Schedule.ScanDelay = 500 * time.Millisecond
	}
	if c.Account.RiskPerTrade == 0 {
		c.Account.RiskPerTrade = 0.01
	}
	if c.Account.StateFile == "" {
		c.Account.StateFile = "data/positions.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/retest_sentinel.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// DetectorConfig overlays the configured thresholds on strategy.DefaultConfig.
func (c *Config) DetectorConfig() strategy.Config {
	sc := strategy.DefaultConfig()
	d := c.Detector
	if d.MAPeriod > 0 {
		sc.MAPeriod = d.MAPeriod
	}
	if d.RiskReward > 0 {
		sc.RiskReward = d.RiskReward
	}
	if d.Proximity > 0 {
		sc.Proximity = d.Proximity
	}
	if d.VolumeConfirmation != nil {
		sc.VolumeConfirmation = *d.VolumeConfirmation
	}
	if d.VolumeSurge > 0 {
		sc.VolumeSurge = d.VolumeSurge
	}
	if d.VolumeDecay > 0 {
		sc.VolumeDecay = d.VolumeDecay
	}
	if d.VolumeBaselinePeriod > 0 {
		sc.VolumeBaselinePeriod = d.VolumeBaselinePeriod
	}
	if d.RetestLookahead > 0 {
		sc.RetestLookahead = d.RetestLookahead
	}
	if d.BreakoutLookback > 0 {
		sc.BreakoutLookback = d.BreakoutLookback
	}
	if d.WindowSize > 0 {
		sc.WindowSize = d.WindowSize
	}
	return sc
}

// Validate checks the settings needed by every command. Telegram is optional:
// without it notifications are logged only.
func (c *Config) Validate() error {
	if c.Account.Equity < 0 {
		return fmt.Errorf("account.equity must not be negative")
	}
	if c.Account.RiskPerTrade <= 0 || c.Account.RiskPerTrade > 1 {
		return fmt.Errorf("account.risk_per_trade must be in (0, 1]")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	if c.DataSource.LookbackDays < c.DetectorConfig().MAPeriod {
		return fmt.Errorf("data_source.lookback_days %d is shorter than the %d-bar moving average",
			c.DataSource.LookbackDays, c.DetectorConfig().MAPeriod)
	}
	if err := c.DetectorConfig().Validate(); err != nil {
		return fmt.Errorf("detector: %w", err)
	}
	return nil
}

// TelegramEnabled reports whether notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
