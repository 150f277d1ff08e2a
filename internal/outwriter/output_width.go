package outwriter

import (
	"os"

	"podpulse/internal/contract"

	"golang.org/x/term"
)

// getMaxTableNameWidth calculates the maximum width for project names in table
// output based on terminal width and the fixed columns around them.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// pod, state, raw state, lead, target, updated, plus borders and padding
	baseWidth := 50

	// Calculate available space for the name
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to prevent overly long names
		return 60
	}
	return available
}
