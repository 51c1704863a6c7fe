package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/monozip/internal/config"
	"github.com/jorge-barreto/monozip/internal/preset"
	"github.com/jorge-barreto/monozip/internal/ux"
)

// PresetsFile is the catalog written next to the config.
const PresetsFile = "presets.yaml"

func configTemplate() string {
	return strings.Replace(config.DefaultYAML, "# presets: "+PresetsFile, "presets: "+PresetsFile, 1)
}

// Init writes an editable monozip.yaml and presets.yaml into targetDir,
// seeded with the built-in defaults. Existing files are never overwritten.
func Init(targetDir string) error {
	configPath := filepath.Join(targetDir, config.DefaultPath)
	presetsPath := filepath.Join(targetDir, PresetsFile)
	for _, p := range []string{configPath, presetsPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists in %s", filepath.Base(p), targetDir)
		}
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", targetDir, err)
	}
	if err := os.WriteFile(presetsPath, preset.DefaultYAML(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", PresetsFile, err)
	}
	if err := os.WriteFile(configPath, []byte(configTemplate()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultPath, err)
	}

	out := ux.Out
	fmt.Fprintf(out, "\n%s%s✓ Initialized monozip%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Fprintf(out, "  Created:\n")
	fmt.Fprintf(out, "    %s%s%s  server and formatter settings\n", ux.Cyan, config.DefaultPath, ux.Reset)
	fmt.Fprintf(out, "    %s%s%s  starter presets\n\n", ux.Cyan, PresetsFile, ux.Reset)
	fmt.Fprintf(out, "  Next steps:\n")
	fmt.Fprintf(out, "    1. Run %smonozip doctor%s to check your formatters\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    2. Run %smonozip build paste.txt%s or %smonozip serve%s\n\n", ux.Cyan, ux.Reset, ux.Cyan, ux.Reset)
	return nil
}
