package commands

import (
	"os"
	"path/filepath"

	"github.com/keyrxd/keyrx/internal/logger"
	"github.com/keyrxd/keyrx/pkg/config"
)

// InitLogger wires the daemon's configured logging settings into the
// process-wide structured logger.
func InitLogger(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// getConfigSource describes where the active configuration came from,
// for a startup log line.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}

// stateDir returns the directory keyrxd keeps its PID file and
// background log file in: $XDG_STATE_HOME/keyrxd, falling back to
// ~/.local/state/keyrxd.
func stateDir() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "keyrxd"), nil
}
