package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/keyrxd/keyrx/internal/daemon"
	"github.com/keyrxd/keyrx/internal/logger"
	"github.com/keyrxd/keyrx/internal/metrics"
	"github.com/keyrxd/keyrx/internal/platform"
	"github.com/keyrxd/keyrx/pkg/codec"
	"github.com/keyrxd/keyrx/pkg/config"
)

var (
	foreground  bool
	pidFile     string
	logFile     string
	watchConfig bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the keyrxd remapping daemon",
	Long: `Start the keyrxd keyboard remapping daemon.

By default, the daemon runs in the background. Use --foreground to run
synchronously in the current terminal, which is useful for debugging
or when managed by a process supervisor.

Examples:
  # Start in background (default)
  keyrxd start

  # Start in foreground
  keyrxd start --foreground

  # Start with a custom config file
  keyrxd start --config /etc/keyrxd/config.yaml

  # Exit for a supervisor restart whenever the config file changes
  keyrxd start --foreground --watch-config`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/keyrxd/keyrxd.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for background mode (default: $XDG_STATE_HOME/keyrxd/keyrxd.log)")
	startCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Exit for a supervisor restart when the config file changes on disk")
}

func runStart(cmd *cobra.Command, args []string) error {
	if !foreground {
		return startBackground()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("keyrxd starting", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("configuration loaded", "source", getConfigSource(GetConfigFile()))

	profileBytes, err := os.ReadFile(cfg.Engine.ProfilePath)
	if err != nil {
		return fmt.Errorf("failed to read compiled profile %q: %w", cfg.Engine.ProfilePath, err)
	}
	if max := cfg.Engine.MaxProfileSize.Uint64(); max > 0 && uint64(len(profileBytes)) > max {
		return fmt.Errorf("compiled profile %q is %d bytes, exceeds max_profile_size of %s", cfg.Engine.ProfilePath, len(profileBytes), cfg.Engine.MaxProfileSize)
	}
	profileConfig, err := codec.Load(profileBytes)
	if err != nil {
		return fmt.Errorf("failed to load compiled profile %q: %w", cfg.Engine.ProfilePath, err)
	}
	logger.Info("profile loaded", "path", cfg.Engine.ProfilePath, "devices", len(profileConfig.Devices))

	m := metrics.New(cfg.Metrics.Enabled)
	if cfg.Metrics.Enabled {
		logger.Info("metrics enabled", "port", cfg.Metrics.Port)
	} else {
		logger.Info("metrics disabled")
	}

	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	d := daemon.New(daemon.DefaultConfig(), platform.New(), profileConfig, m)

	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(signalCtx)
	defer cancel()

	if watchConfig {
		watchPath := getConfigSource(GetConfigFile())
		watcher, err := config.WatchFile(watchPath, func() {
			logger.Warn("config file changed on disk, shutting down for restart", "path", watchPath)
			cancel()
		})
		if err != nil {
			return fmt.Errorf("failed to watch config file: %w", err)
		}
		defer func() { _ = watcher.Close() }()
		logger.Info("watching config file for changes", "path", watchPath)
	}

	logger.Info("daemon is running, press Ctrl+C to stop")
	err = d.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("daemon exited with error", "error", err)
		return err
	}
	logger.Info("daemon stopped gracefully")
	return nil
}

// startBackground re-execs the current binary with --foreground and
// detaches it into its own session, then returns immediately.
func startBackground() error {
	dir, err := stateDir()
	if err != nil {
		return fmt.Errorf("failed to resolve state directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	pidPath := pidFile
	if pidPath == "" {
		pidPath = filepath.Join(dir, "keyrxd.pid")
	}

	if _, err := os.Stat(pidPath); err == nil {
		if pidData, err := os.ReadFile(pidPath); err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("keyrxd is already running (PID %d)", pid)
					}
				}
			}
		}
		_ = os.Remove(pidPath)
	}

	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(dir, "keyrxd.log")
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	cmd := exec.Command(executable, daemonArgs...)

	logHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logHandle.Close() }()

	cmd.Stdout = logHandle
	cmd.Stderr = logHandle
	cmd.SysProcAttr = detachSysProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Printf("keyrxd started in background (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)

	return nil
}
