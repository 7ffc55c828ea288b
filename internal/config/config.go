// Package config loads the CLI configuration from built-in defaults, an
// optional TOML file and LOTTERY_* environment variable overrides.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/bkastner/lottery-cli-go/internal/core"
)

// Config holds all application configuration. It is built once at startup
// and passed explicitly to the components that need it; there is no global
// instance.
type Config struct {
	CacheDir string `toml:"cache_dir"`

	Wait        WaitConfig        `toml:"wait"`
	Eurojackpot EurojackpotConfig `toml:"eurojackpot"`
	Lotto       LottoConfig       `toml:"lotto"`
	Tickets     TicketConfig      `toml:"tickets"`
	Dividends   DividendConfig    `toml:"dividends"`
}

// WaitConfig bounds the politeness delay before live network calls.
type WaitConfig struct {
	Enabled    bool    `toml:"enabled"`
	MinSeconds float64 `toml:"min_seconds"`
	MaxSeconds float64 `toml:"max_seconds"`
}

// EurojackpotConfig configures the EuroJackpot export.
type EurojackpotConfig struct {
	OutputFile   string `toml:"output_file"`
	LookbackDays int    `toml:"lookback_days"`
}

// LottoConfig configures the Lotto 6aus49 backfill.
type LottoConfig struct {
	OutputFile string `toml:"output_file"`
}

// TicketConfig configures ticket evaluation.
type TicketConfig struct {
	File  string  `toml:"file"`
	Price float64 `toml:"price"`
}

// DividendConfig configures the dividend dataset build.
type DividendConfig struct {
	OutputDir string `toml:"output_dir"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CacheDir: core.DefaultCacheDir,
		Wait: WaitConfig{
			Enabled:    true,
			MinSeconds: core.DefaultWaitMinSecs,
			MaxSeconds: core.DefaultWaitMaxSecs,
		},
		Eurojackpot: EurojackpotConfig{
			OutputFile:   "results.json",
			LookbackDays: core.DefaultLookbackDays,
		},
		Lotto: LottoConfig{
			OutputFile: "lotto_6aus49_results.json",
		},
		Tickets: TicketConfig{
			File:  core.DefaultTicketFile,
			Price: core.DefaultTicketPrice,
		},
		Dividends: DividendConfig{
			OutputDir: "dividends",
		},
	}
}

// Load builds the final configuration: defaults, overlaid with the TOML
// file at path (when given), overlaid with LOTTERY_* environment
// variables. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known LOTTERY_* environment variables and
// overwrites the corresponding Config fields when a variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.CacheDir, "LOTTERY_CACHE_DIR")

	setBool(&cfg.Wait.Enabled, "LOTTERY_WAIT_ENABLED")
	setFloat(&cfg.Wait.MinSeconds, "LOTTERY_WAIT_MIN_SECONDS")
	setFloat(&cfg.Wait.MaxSeconds, "LOTTERY_WAIT_MAX_SECONDS")

	setStr(&cfg.Eurojackpot.OutputFile, "LOTTERY_EUROJACKPOT_OUTPUT_FILE")
	setInt(&cfg.Eurojackpot.LookbackDays, "LOTTERY_EUROJACKPOT_LOOKBACK_DAYS")

	setStr(&cfg.Lotto.OutputFile, "LOTTERY_LOTTO_OUTPUT_FILE")

	setStr(&cfg.Tickets.File, "LOTTERY_TICKET_FILE")
	setFloat(&cfg.Tickets.Price, "LOTTERY_TICKET_PRICE")

	setStr(&cfg.Dividends.OutputDir, "LOTTERY_DIVIDENDS_OUTPUT_DIR")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
