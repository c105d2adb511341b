package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func yamlSafePath(p string) string {
	return filepath.ToSlash(p)
}

func TestLoadAppliesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "DEBUG"

engine:
  profile_path: "` + yamlSafePath(tmpDir) + `/profile.krx"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Logging.Level = %q, want DEBUG", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text (default)", cfg.Logging.Format)
	}
	if cfg.Engine.PressedKeyCap != 32 {
		t.Errorf("Engine.PressedKeyCap = %d, want 32 (default)", cfg.Engine.PressedKeyCap)
	}
	if cfg.Engine.PressedOutputCap != 5 {
		t.Errorf("Engine.PressedOutputCap = %d, want 5 (default)", cfg.Engine.PressedOutputCap)
	}
	if cfg.Daemon.ShutdownTimeout != 5*time.Second {
		t.Errorf("Daemon.ShutdownTimeout = %v, want 5s (default)", cfg.Daemon.ShutdownTimeout)
	}
}

func TestLoadNoConfigFileReturnsDefault(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("expected a default config, got nil")
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Logging.Level = %q, want INFO (default)", cfg.Logging.Level)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("logging:\n  level: DEBUG\n  broken [[[\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected an error loading invalid YAML, got nil")
	}
}

func TestLoadRejectsMissingProfilePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("logging:\n  level: INFO\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected validation error for missing engine.profile_path, got nil")
	}
}

func TestByteSizeDecodeHookParsesHumanReadableSizes(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
engine:
  profile_path: "` + yamlSafePath(tmpDir) + `/profile.krx"
  max_profile_size: "2Mi"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.MaxProfileSize.Uint64() != 2*1024*1024 {
		t.Errorf("Engine.MaxProfileSize = %d, want 2Mi", cfg.Engine.MaxProfileSize.Uint64())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	original := GetDefaultConfig()
	original.Engine.ProfilePath = filepath.Join(tmpDir, "profile.krx")
	original.Logging.Level = "WARN"

	if err := SaveConfig(original, configPath); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Logging.Level != "WARN" {
		t.Errorf("Logging.Level = %q, want WARN", loaded.Logging.Level)
	}
	if loaded.Engine.ProfilePath != original.Engine.ProfilePath {
		t.Errorf("Engine.ProfilePath = %q, want %q", loaded.Engine.ProfilePath, original.Engine.ProfilePath)
	}
}
