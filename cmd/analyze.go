package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/render"
	"github.com/khrees2412/resumatch/internal/session"
	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the resume against the job description",
	Long: `Check the backend, submit the resume and job description, and show the
match score. Flags replace a field before submitting; otherwise the saved
fields are used.`,
	Example: `  resumatch analyze
  resumatch analyze --resume-file resume.txt --job-url https://jobs.lever.co/acme/123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		page := a.Page
		out := cmd.OutOrStdout()

		if path, _ := cmd.Flags().GetString("resume-file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("error reading resume file: %w", err)
			}
			if err := page.SetResume(string(data)); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("job-file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("error reading job file: %w", err)
			}
			if err := page.SetJob(string(data)); err != nil {
				return err
			}
		}
		if url, _ := cmd.Flags().GetString("job-url"); url != "" {
			if _, err := page.ImportJob(ctx, url); err != nil {
				return err
			}
		}

		fmt.Fprintln(out, render.StatusBadge(page.CheckServer(ctx)))

		result, err := submitAnalysis(ctx, page, out)
		if errors.Is(err, session.ErrServerOffline) {
			return fmt.Errorf("cannot analyze while the backend at %s is offline", a.API.BaseURL())
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Result(result))
		return nil
	},
}

// submitAnalysis shows the loading line only for a submit that passes the
// gate; rejected submits go straight to Analyze for their alert or error.
func submitAnalysis(ctx context.Context, page *session.Page, out io.Writer) (*models.AnalysisResult, error) {
	if page.CanAnalyze() {
		fmt.Fprintln(out, hintStyle.Render("⏳ Analyzing Semantics..."))
	}
	return page.Analyze(ctx)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("resume-file", "", "Replace the resume with the text in this file")
	analyzeCmd.Flags().String("job-file", "", "Replace the job description with the text in this file")
	analyzeCmd.Flags().String("job-url", "", "Replace the job description with an imported posting")
}
