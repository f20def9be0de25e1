package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Detection mark constants.
const (
	YesMark = "yes" // Capability present
	NoMark  = "no"  // Capability absent
)

// Color variables for console output.
var (
	TitleColor   = color.New(color.FgCyan, color.Bold)  // titleColor heads the whole report.
	SectionColor = color.New(color.FgWhite, color.Bold) // sectionColor introduces each block.
	YesColor     = color.New(color.FgGreen)             // yesColor marks detected capabilities.
	NoColor      = color.New(color.FgYellow)            // noColor marks absent capabilities, not an error.
)

// GetPlainMark returns a plain yes/no mark for a detection flag. This is the
// core logic used for JSON and file printing, where ANSI codes would be noise.
func GetPlainMark(flag bool) string {
	if flag {
		return YesMark
	}
	return NoMark
}

// GetColorMark returns a colored yes/no mark for console output (table).
// It uses GetPlainMark to determine the string, and then applies the appropriate color.
func GetColorMark(flag bool) string {
	text := GetPlainMark(flag)

	if text == YesMark {
		return YesColor.Sprint(text)
	}
	return NoColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when no path is given.
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

// GetStoreDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".engram_snapshots.db"
	}
	return filepath.Join(homeDir, ".engram_snapshots.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
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
