package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/render"
	"github.com/khrees2412/resumatch/internal/session"
	"github.com/khrees2412/resumatch/internal/status"
	"github.com/khrees2412/resumatch/internal/theme"
	"github.com/spf13/cobra"
)

// endOfText ends a pasted block in the interactive page
const endOfText = "."

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI",
	Long:  "Launch the interactive page for pasting, uploading and analyzing in one session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), a.Page, a.Theme, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runTUI(ctx context.Context, page *session.Page, themes *theme.Controller, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, render.StatusBadge(status.Checking))
	page.CheckServer(ctx)

	for {
		displayPage(page, themes, out)

		fmt.Fprint(out, "\n> ")
		choice, err := reader.ReadString('\n')
		if err != nil && choice == "" {
			// stdin closed
			return nil
		}
		choice = strings.TrimSpace(strings.ToLower(choice))

		switch choice {
		case "r":
			fmt.Fprintln(out, hintStyle.Render("Paste your resume text, then a line with a single '.'"))
			if err := page.SetResume(readBlock(reader)); err != nil {
				return err
			}
		case "u":
			fmt.Fprint(out, labelStyle.Render("PDF path: "))
			path, _ := reader.ReadString('\n')
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			fmt.Fprintln(out, hintStyle.Render("⏳ Extracting text..."))
			if file, err := page.UploadResume(ctx, path); err == nil {
				fmt.Fprintf(out, "✓ Resume extracted from %s\n", file.Name)
			} else if !errors.Is(err, session.ErrAlerted) {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		case "j":
			fmt.Fprintln(out, hintStyle.Render("Paste the job description, then a line with a single '.'"))
			if err := page.SetJob(readBlock(reader)); err != nil {
				return err
			}
		case "l":
			fmt.Fprint(out, labelStyle.Render("Job URL: "))
			url, _ := reader.ReadString('\n')
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			fmt.Fprintf(out, "Fetching job details from %s...\n", url)
			if posting, err := page.ImportJob(ctx, url); err == nil {
				fmt.Fprintf(out, "✓ Job imported: %s\n", posting.Title)
			} else if !errors.Is(err, session.ErrAlerted) {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		case "a":
			if page.Status() == status.Offline {
				fmt.Fprintln(out, alertStyle.Render("Analyze is unavailable while the server is offline"))
				continue
			}
			if _, err := submitAnalysis(ctx, page, out); err != nil && !errors.Is(err, session.ErrAlerted) {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		case "t":
			if _, err := themes.Toggle(); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		case "q":
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice")
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func displayPage(page *session.Page, themes *theme.Controller, out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "%s  %s  %s\n", titleStyle.Render("ResuMatch"), render.StatusBadge(page.Status()), themes.Icon())
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Resume:"), fieldSummary(page.Resume()))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Job:"), fieldSummary(page.Job()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.Result(page.Result()))

	analyze := "  [a] Analyze Match"
	if !page.CanAnalyze() {
		analyze = hintStyle.Render(analyze + " (disabled)")
	}

	fmt.Fprintln(out, "\nOptions:")
	fmt.Fprintln(out, "  [r] Paste resume")
	fmt.Fprintln(out, "  [u] Upload resume PDF")
	fmt.Fprintln(out, "  [j] Paste job description")
	fmt.Fprintln(out, "  [l] Import job from URL")
	fmt.Fprintln(out, analyze)
	fmt.Fprintf(out, "  [t] Toggle theme %s\n", themes.Icon())
	fmt.Fprintln(out, "  [q] Quit")
}

func fieldSummary(text string) string {
	if strings.TrimSpace(text) == "" {
		return hintStyle.Render("(empty)")
	}
	return fmt.Sprintf("%s %s", valueStyle.Render(preview(text, 48)),
		hintStyle.Render(fmt.Sprintf("(%d chars)", utf8.RuneCountInString(text))))
}

// readBlock reads lines until one equal to endOfText or EOF
func readBlock(reader *bufio.Reader) string {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == endOfText {
			break
		}
		if line != "" {
			lines = append(lines, trimmed)
		}
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
