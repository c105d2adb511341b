package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyrxd/keyrx/internal/cli/output"
	"github.com/keyrxd/keyrx/internal/cli/prompt"
	"github.com/keyrxd/keyrx/internal/platform"
)

var (
	devicesFormat      string
	devicesInteractive bool
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List input devices discoverable on this platform",
	Long: `List the input devices the current platform backend can
discover and grab.

Examples:
  keyrxd devices
  keyrxd devices --format json
  keyrxd devices --interactive`,
	RunE: runDevices,
}

func init() {
	devicesCmd.Flags().StringVar(&devicesFormat, "format", "table", "Output format: table, json, or yaml")
	devicesCmd.Flags().BoolVarP(&devicesInteractive, "interactive", "i", false, "Interactively pick one discovered device and print a device_start() pattern for it")
}

func runDevices(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(devicesFormat)
	if err != nil {
		return err
	}

	plat := platform.New()
	devices, err := plat.Discover()
	if err != nil {
		return fmt.Errorf("failed to discover input devices on %s: %w", plat.Name(), err)
	}

	type deviceInfo struct {
		ID       string `json:"id" yaml:"id"`
		Platform string `json:"platform" yaml:"platform"`
	}
	infos := make([]deviceInfo, 0, len(devices))
	for _, dev := range devices {
		infos = append(infos, deviceInfo{ID: dev.ID(), Platform: plat.Name()})
	}

	if devicesInteractive {
		if len(infos) == 0 {
			return fmt.Errorf("no input devices discovered on %s", plat.Name())
		}
		options := make([]prompt.SelectOption, 0, len(infos))
		for _, info := range infos {
			options = append(options, prompt.SelectOption{Label: info.ID, Value: info.ID, Description: info.Platform})
		}
		chosen, err := prompt.Select("Select an input device", options)
		if err != nil {
			return err
		}
		fmt.Printf("device_start(%q)\n", chosen)
		return nil
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, infos)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, infos)
	default:
		table := output.NewTableData("Device ID", "Platform")
		for _, info := range infos {
			table.AddRow(info.ID, info.Platform)
		}
		return output.PrintTable(os.Stdout, table)
	}
}
