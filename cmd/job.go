package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Edit the job description field",
	Long:  "Paste, import, view and clear the job description that gets analyzed",
}

var setJobCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the job description",
	Example: `  resumatch job set --url https://boards.greenhouse.io/acme/jobs/123
  resumatch job set --file posting.txt
  pbpaste | resumatch job set`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if url, _ := cmd.Flags().GetString("url"); url != "" {
			fmt.Fprintf(out, "Fetching job details from %s...\n", url)
			posting, err := a.Page.ImportJob(cmd.Context(), url)
			if err != nil {
				return err
			}
			title := posting.Title
			if title == "" {
				title = url
			}
			fmt.Fprintf(out, "✓ Job imported: %s (%d characters)\n", title, utf8.RuneCountInString(posting.Description))
			return nil
		}

		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		if err := a.Page.SetJob(text); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Job description updated (%d characters)\n", utf8.RuneCountInString(text))
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the job description",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		printField(cmd, "Job Description", a.Page.Job(), "resumatch job set")
		return nil
	},
}

var clearJobCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the job description field",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.Page.SetJob(""); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Job description cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(setJobCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(clearJobCmd)

	addInputFlags(setJobCmd)
	setJobCmd.Flags().String("url", "", "Import the description from a job posting URL")
}
