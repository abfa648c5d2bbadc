// config.go - configuration management for the pool daemon
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// Config is the daemon's on-disk configuration. Pool parameters here are
// typed arguments the daemon passes to pool.Initialize; the core package
// never reads this struct directly.
type Config struct {
	// Pool parameters
	TreeDepth   int    `json:"tree_depth"`
	HistorySize int    `json:"history_size"`
	MaxDeposit  string `json:"max_deposit"` // decimal string, parsed below
	MinFee      string `json:"min_fee"`
	MaxFee      string `json:"max_fee"`

	// File paths
	VKPath    string `json:"vk_path"`
	StatePath string `json:"state_path"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Networking
	ListenAddr string `json:"listen_addr"`

	// Rate limiting
	RelayerRatePerSecond float64 `json:"relayer_rate_per_second"`
	RelayerBurst         int     `json:"relayer_burst"`

	// Security
	EnableAudit  bool   `json:"enable_audit"`
	AuditLogPath string `json:"audit_log_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TreeDepth:            20,
		HistorySize:          100,
		MaxDeposit:           "1000000000",
		MinFee:               "0",
		MaxFee:               "1000000",
		VKPath:               "vk.json",
		StatePath:            "pool_state.json",
		LogLevel:             "info",
		LogFile:              "poold.log",
		ListenAddr:           "127.0.0.1:8545",
		RelayerRatePerSecond: 5,
		RelayerBurst:         10,
		EnableAudit:          true,
		AuditLogPath:         "audit.log",
	}
}

// LoadConfig loads configuration from file, or creates and saves the
// default configuration if the file does not yet exist.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer file.Close()

		var config Config
		if err := json.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
		return &config, nil
	}

	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("save default config: %w", err)
	}
	return config, nil
}

// SaveConfig writes configuration to file as indented JSON.
func SaveConfig(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(config)
}

// Validate checks the configuration bounds that pool.Initialize will also
// enforce, so a bad config fails fast at daemon startup rather than deep
// inside the dispatcher.
func (c *Config) Validate() error {
	if c.TreeDepth < 4 || c.TreeDepth > 24 {
		return fmt.Errorf("tree_depth must be between 4 and 24")
	}
	if c.HistorySize < 30 || c.HistorySize > 1000 {
		return fmt.Errorf("history_size must be between 30 and 1000")
	}
	if _, err := c.MaxDepositAmount(); err != nil {
		return fmt.Errorf("max_deposit: %w", err)
	}
	if c.RelayerRatePerSecond <= 0 {
		return fmt.Errorf("relayer_rate_per_second must be positive")
	}
	if c.RelayerBurst <= 0 {
		return fmt.Errorf("relayer_burst must be positive")
	}
	return nil
}

// MaxDepositAmount parses MaxDeposit as an exact decimal and converts it
// to the integer token-unit amount pool.Initialize expects, avoiding the
// float rounding a plain strconv.ParseFloat would risk on an
// operator-entered config value.
func (c *Config) MaxDepositAmount() (uint64, error) {
	return parseTokenAmount(c.MaxDeposit)
}

func parseTokenAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", s)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("amount %q must be a whole number of token units", s)
	}
	return uint64(d.IntPart()), nil
}
