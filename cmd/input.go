package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/spf13/cobra"
)

// readInput takes field text from --text, --file or piped stdin, in that order
func readInput(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		return text, nil
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", app.ErrNoInput
		}
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	if len(data) == 0 {
		return "", app.ErrNoInput
	}
	return string(data), nil
}

// preview is the first line of text, shortened to width runes
func preview(text string, width int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-1]) + "…"
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Text to use")
	cmd.Flags().StringP("file", "f", "", "Read the text from a file")
}
