package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/engramdev/engram/internal/contract"
)

// terminalWidth returns the usable terminal width, honoring the width
// override and falling back to a conservative default when stdout is not a
// terminal.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxValueWidth calculates the width available to the value column of the
// summary table.
func getMaxValueWidth(cfg *contract.Config) int {
	// Key column plus borders and padding
	baseWidth := 20

	available := terminalWidth(cfg) - baseWidth
	if available < 40 {
		// Minimum reasonable value width
		return 40
	}
	if available > 100 {
		// Cap so rows stay scannable on wide terminals
		return 100
	}
	return available
}

// getMaxTablePathWidth calculates the width available to the path column of
// the snapshot listing.
func getMaxTablePathWidth(cfg *contract.Config) int {
	// ID, repo and created-at columns plus borders and padding
	baseWidth := 75

	available := terminalWidth(cfg) - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
