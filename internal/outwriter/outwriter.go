// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// LogCompileHeader prints a one-line header for a compile run to stderr.
func LogCompileHeader(cfg *contract.Config, inputName string, models int) {
	contract.LogInfo(cfg.UseEmojis, "📄", fmt.Sprintf("Input: %s (%d %s, %d workers)", inputName, models, plural(models, "model", "models"), cfg.Workers))
}

// LogCompileResult prints the outcome of a compile run to stderr.
func LogCompileResult(results []schema.ModelResult, cfg *contract.Config, duration time.Duration) {
	failed := CountFailed(results)
	msg := fmt.Sprintf("Compiled %d of %d %s in %v", len(results)-failed, len(results), plural(len(results), "model", "models"), duration.Round(time.Millisecond))
	if cfg.RegistryBackend != "" && cfg.RegistryBackend != schema.NoneBackend {
		msg += fmt.Sprintf(". Registry backend: %s", cfg.RegistryBackend)
	}
	emoji := "✅"
	if failed > 0 {
		emoji = "⚠️"
	}
	contract.LogInfo(cfg.UseEmojis, emoji, msg)
}

// CountFailed returns how many results carry an error.
func CountFailed(results []schema.ModelResult) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
