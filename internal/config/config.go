package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Queue   QueueConfig   `toml:"queue"`
	Trainer TrainerConfig `toml:"trainer"`
	Dex     DexConfig     `toml:"dex"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Name         string        `toml:"name"`
	BindAddress  string        `toml:"bind_address"`
	StartTime    int64         // set at boot, not from config
	ShutdownWait time.Duration `toml:"shutdown_wait"`
}

// QueueConfig bounds the per-connection channels between the link
// reader goroutine and the control-packet/trade-machine consumers.
type QueueConfig struct {
	ControlQueueSize int `toml:"control_queue_size"`
	SIOQueueSize     int `toml:"sio_queue_size"`
}

// TrainerConfig seeds the roster this server offers up for trade when
// no richer party source is wired in.
type TrainerConfig struct {
	Name         string `toml:"name"`
	PartySlots   int    `toml:"party_slots"`
	DefaultLevel int    `toml:"default_level"`
}

// DexConfig points at the species/learnset table backing the default
// party factory.
type DexConfig struct {
	DataPath string `toml:"data_path"` // empty uses the embedded default table
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Default returns the zero-config server configuration: a runnable
// scaffold roster and local bind address, used when no TOML file is
// present.
func Default() *Config {
	cfg := defaults()
	cfg.Server.StartTime = time.Now().Unix()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:         "pokemon-trade-spoofer",
			BindAddress:  "127.0.0.1:9999",
			ShutdownWait: 5 * time.Second,
		},
		Queue: QueueConfig{
			ControlQueueSize: 8,
			SIOQueueSize:     512,
		},
		Trainer: TrainerConfig{
			Name:         "SPOOF",
			PartySlots:   6,
			DefaultLevel: 1,
		},
		Dex: DexConfig{
			DataPath: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
