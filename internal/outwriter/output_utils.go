package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/engramdev/engram/internal/contract"
)

// Listing colors for generation results.
var (
	successColor = color.New(color.FgGreen, color.Bold) // successColor heads the generation results.
	skillColor   = color.New(color.FgCyan)              // skillColor marks skill paths.
	memoryColor  = color.New(color.FgMagenta)           // memoryColor marks memory paths.
	errorColor   = color.New(color.FgRed)               // errorColor marks failed generation steps.
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// formatCount renders an integer with thousands separators, e.g. 12,345.
func formatCount(n int) string {
	if n < 0 {
		return "-" + formatCount(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// wordCount counts whitespace-separated words in a document.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// truncateValue clips a value to a maximum width with an ellipsis suffix.
// Unlike TruncatePath it keeps the head of the string, which is the readable
// part of prose values.
func truncateValue(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// headOf returns at most n leading elements of s.
func headOf[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
