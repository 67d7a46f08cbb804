package outwriter

import (
	"os"

	"github.com/huangsam/scorecard/internal/contract"
	"golang.org/x/term"
)

// GetMaxPredicateWidth calculates the maximum width for predicate text in table output
// based on terminal width and table configuration.
func GetMaxPredicateWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for #, Partial Score and Reason Code with borders/padding
	baseWidth := 40

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}
