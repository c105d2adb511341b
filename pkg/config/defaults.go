package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/keyrxd/keyrx/internal/bytesize"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Zero values are replaced with defaults; explicit values are
// preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyEngineDefaults(&cfg.Engine)
	applyMetricsDefaults(&cfg.Metrics)
	applyDaemonDefaults(&cfg.Daemon)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyEngineDefaults(cfg *EngineConfig) {
	if cfg.MaxProfileSize == 0 {
		cfg.MaxProfileSize = bytesize.ByteSize(4 * bytesize.MiB)
	}
	if cfg.PressedKeyCap == 0 {
		cfg.PressedKeyCap = 32
	}
	if cfg.PressedOutputCap == 0 {
		cfg.PressedOutputCap = 5
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyDaemonDefaults(cfg *DaemonConfig) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.PidFile == "" {
		cfg.PidFile = "/run/keyrxd.pid"
	}
}

// GetDefaultConfig returns a Config struct with all default values
// applied, and a profile path pointing at the default config
// directory's profile.krx.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Engine: EngineConfig{
			ProfilePath: filepath.Join(getConfigDir(), "profile.krx"),
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
