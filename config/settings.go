package config

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

type ServerConfig struct {
	Port int `yaml:"port"`
	// RefreshInterval enables periodic refreshes when positive.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{Port: 5000}
}

func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must not be negative")
	}
	return nil
}

const (
	StorageMemory     = "memory"
	StorageSQLite     = "sqlite"
	StoragePostgres   = "postgres"
	StorageClickhouse = "clickhouse"
)

type StorageConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	HistoryLimit int    `yaml:"history_limit"`
}

func DefaultStorageConfig() StorageConfig {
	return StorageConfig{Driver: StorageMemory, HistoryLimit: 50}
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageMemory:
	case StorageSQLite, StoragePostgres, StorageClickhouse:
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", c.Driver)
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative")
	}
	return nil
}

type SolanaConfig struct {
	RPCURL         string        `yaml:"rpc_url"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	WalletCacheTTL time.Duration `yaml:"wallet_cache_ttl"`
}

func DefaultSolanaConfig() SolanaConfig {
	return SolanaConfig{
		RPCURL:         "https://api.mainnet-beta.solana.com",
		Timeout:        10 * time.Second,
		MaxRetries:     3,
		WalletCacheTTL: 30 * time.Second,
	}
}

func (c *SolanaConfig) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("rpc_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "info"}
}

func (c *LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return err
	}
	return nil
}
