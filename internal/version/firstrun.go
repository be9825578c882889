package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhabedank/referat/internal/tui"
)

// ConfigFileName is the name of the user configuration file.
const ConfigFileName = ".referat.yaml"

// IsFirstRun returns true if this appears to be the first run.
// Checks for existence of config file or first-run marker.
func IsFirstRun() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}

	if _, err := os.Stat(filepath.Join(home, ConfigFileName)); err == nil {
		return false
	}

	if _, err := os.Stat(markerPath(home)); err == nil {
		return false
	}

	return true
}

// MarkInitialized creates the first-run marker.
func MarkInitialized() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to find home dir: %w", err)
	}

	path := markerPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create marker dir: %w", err)
	}
	if err := os.WriteFile(path, []byte{}, 0644); err != nil {
		return fmt.Errorf("failed to write first-run marker: %w", err)
	}
	return nil
}

func markerPath(home string) string {
	return filepath.Join(home, ".referat", ".initialized")
}

// PrintFirstRunNotice prints a welcome message for first-time users and
// marks the installation as initialized. A marker that cannot be written only
// means the notice shows again next time.
func PrintFirstRunNotice(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Welcome to referat!\n", tui.TitleStyle.Render("*"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Quick start:")
	fmt.Fprintf(w, "    1. Run %s to pick your provider and model\n", tui.ModelStyle.Render("referat setup"))
	fmt.Fprintf(w, "    2. Write one essay interactively: %s\n", tui.ModelStyle.Render("referat generate"))
	fmt.Fprintf(w, "    3. Or a whole list: %s\n", tui.ModelStyle.Render("referat batch --topics-file topics.txt"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", tui.HelpStyle.Render("Run 'referat --help' for all options"))
	fmt.Fprintln(w)

	_ = MarkInitialized()
}
