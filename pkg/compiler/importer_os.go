package compiler

import (
	"fmt"
	"os"
	"path/filepath"
)

// OSImporter resolves `load(path)` directives against the real
// filesystem: relative to the importing file's directory first, then
// against a fixed stdlib search directory, matching spec.md §4.2's
// "relative-first then stdlib-first-match" contract.
type OSImporter struct {
	StdlibDir string
}

// NewOSImporter builds an OSImporter rooted at stdlibDir (typically
// $XDG_CONFIG_HOME/keyrxd/stdlib).
func NewOSImporter(stdlibDir string) *OSImporter {
	return &OSImporter{StdlibDir: stdlibDir}
}

func (o *OSImporter) Resolve(fromFile, path string) (string, string, error) {
	relCandidate := filepath.Join(filepath.Dir(fromFile), path)
	if data, err := os.ReadFile(relCandidate); err == nil {
		abs, _ := filepath.Abs(relCandidate)
		return string(data), abs, nil
	}

	if o.StdlibDir != "" {
		stdlibCandidate := filepath.Join(o.StdlibDir, path)
		if data, err := os.ReadFile(stdlibCandidate); err == nil {
			abs, _ := filepath.Abs(stdlibCandidate)
			return string(data), abs, nil
		}
	}

	return "", "", fmt.Errorf("%s not found relative to %s or in stdlib dir %q", path, fromFile, o.StdlibDir)
}
