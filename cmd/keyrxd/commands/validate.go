package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyrxd/keyrx/pkg/profile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.rx>",
	Short: "Compile a mapping source file without writing a profile",
	Long: `Validate a .rx mapping source file: runs the full compiler
pipeline (including any files it loads) and reports the first error
encountered, without writing a .krx profile.

Examples:
  keyrxd validate mappings.rx`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	root, err := compileSource(sourcePath)
	if err != nil {
		return err
	}

	fmt.Printf("%s is valid: %d device(s), %d total mapping(s)\n",
		sourcePath, len(root.Devices), totalMappings(root.Devices))
	return nil
}

func totalMappings(devices []profile.DeviceConfig) int {
	total := 0
	for _, dev := range devices {
		total += len(dev.Mappings)
	}
	return total
}
