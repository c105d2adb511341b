package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/keyrxd/keyrx/internal/cli/output"
	"github.com/keyrxd/keyrx/pkg/codec"
	"github.com/keyrxd/keyrx/pkg/compiler"
	"github.com/keyrxd/keyrx/pkg/config"
	"github.com/keyrxd/keyrx/pkg/profile"
)

var (
	compileOutputPath string
	compileVerbose    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.rx>",
	Short: "Compile a mapping source file into a .krx profile",
	Long: `Compile a .rx mapping source file (and anything it loads) into a
compiled .krx profile the daemon can run.

Examples:
  keyrxd compile mappings.rx -o profile.krx`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutputPath, "output", "o", "", "Output path for the compiled .krx profile (required)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "Print the compiled profile's build id and source hash")
	_ = compileCmd.MarkFlagRequired("output")
}

func runCompile(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	root, err := compileSource(sourcePath)
	if err != nil {
		return err
	}

	data := codec.Serialize(root)
	if err := os.MkdirAll(filepath.Dir(compileOutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(compileOutputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write compiled profile: %w", err)
	}

	table := output.NewTableData("Device Pattern", "Mappings")
	for _, dev := range root.Devices {
		table.AddRow(dev.Identifier.Pattern, fmt.Sprintf("%d", len(dev.Mappings)))
	}
	if err := output.PrintTable(os.Stdout, table); err != nil {
		return err
	}

	fmt.Printf("\nCompiled %d device(s) to %s (%d bytes)\n", len(root.Devices), compileOutputPath, len(data))
	if compileVerbose {
		buildID, err := uuid.FromBytes(root.Metadata.BuildID[:])
		if err != nil {
			return fmt.Errorf("malformed build id: %w", err)
		}
		fmt.Printf("Build id:    %s\n", buildID)
		fmt.Printf("Source hash: %x\n", root.Metadata.SourceHash)
	}
	return nil
}

func compileSource(sourcePath string) (profile.ConfigRoot, error) {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return profile.ConfigRoot{}, fmt.Errorf("failed to read %q: %w", sourcePath, err)
	}

	importer := compiler.NewOSImporter(stdlibDir())
	root, err := compiler.Compile(string(source), sourcePath, importer)
	if err != nil {
		return profile.ConfigRoot{}, fmt.Errorf("compile error: %w", err)
	}
	return root, nil
}

// stdlibDir returns the directory keyrxd searches for `load()` stdlib
// mappings: $XDG_CONFIG_HOME/keyrxd/stdlib.
func stdlibDir() string {
	return filepath.Join(config.GetConfigDir(), "stdlib")
}
