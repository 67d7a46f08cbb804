package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	HeaderColor  = color.New(color.FgCyan, color.Bold) // HeaderColor marks characteristic sections.
	FailureColor = color.New(color.FgRed, color.Bold)  // FailureColor marks failed models.
	SuccessColor = color.New(color.FgGreen)            // SuccessColor marks compiled models.
	MutedColor   = color.New(color.FgHiBlack)          // MutedColor is used for secondary details.
)

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs a progress line to stderr, prefixed with an emoji when enabled.
func LogInfo(useEmojis bool, emoji, msg string) {
	if useEmojis && emoji != "" {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", emoji, msg)
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, msg)
}

// GetRegistryDBFilePath returns the path to the SQLite DB file for the build registry.
func GetRegistryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scorecard_registry.db"
	}
	return filepath.Join(homeDir, ".scorecard_registry.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
