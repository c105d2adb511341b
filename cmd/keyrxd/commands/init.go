package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keyrxd/keyrx/internal/cli/prompt"
	"github.com/keyrxd/keyrx/pkg/config"
)

var (
	initForce       bool
	initProfilePath string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration and starter profile",
	Long: `Initialize a sample keyrxd configuration file and a starter .rx
mapping source file.

By default, the configuration file is created at
$XDG_CONFIG_HOME/keyrxd/config.yaml. Use --config to specify a custom
path.

Examples:
  # Initialize with default location
  keyrxd init

  # Initialize with custom config path
  keyrxd init --config /etc/keyrxd/config.yaml

  # Force overwrite an existing config
  keyrxd init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite an existing config file")
	initCmd.Flags().StringVar(&initProfilePath, "profile-path", "", "Where to look for the compiled .krx profile")
}

const starterSource = `device_start("*")
map("CapsLock", "VK_Escape")
device_end()
`

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		overwrite, err := prompt.Confirm(fmt.Sprintf("%s already exists, overwrite?", configPath), false)
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("aborted: %s already exists (use --force to overwrite)", configPath)
		}
	}

	profilePath := initProfilePath
	if profilePath == "" {
		dir := filepath.Dir(configPath)
		var err error
		profilePath, err = prompt.Input("Compiled profile path", filepath.Join(dir, "profile.krx"))
		if err != nil {
			return err
		}
	}

	cfg := config.GetDefaultConfig()
	cfg.Engine.ProfilePath = profilePath
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("generated default config is invalid: %w", err)
	}
	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	sourcePath := filepath.Join(filepath.Dir(profilePath), "mappings.rx")
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(sourcePath), 0755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
		if err := os.WriteFile(sourcePath, []byte(starterSource), 0644); err != nil {
			return fmt.Errorf("failed to write starter mapping source: %w", err)
		}
	}

	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Printf("Starter mapping source written to: %s\n", sourcePath)
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s to describe your remapping\n", sourcePath)
	fmt.Printf("  2. Compile it: keyrxd compile %s -o %s\n", sourcePath, profilePath)
	fmt.Println("  3. Start the daemon: keyrxd start")

	return nil
}
