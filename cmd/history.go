package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/database"
	"github.com/khrees2412/resumatch/internal/render"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past analyses",
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "List past analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := a.Store.ListHistory(limit)
		if err != nil {
			return fmt.Errorf("error fetching history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No analyses yet. Run 'resumatch analyze' to score your resume")
			return nil
		}

		fmt.Fprintln(out, titleStyle.Render("Past Analyses"))
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %s  %6s  %s\n",
				labelStyle.Render(e.ID[:8]),
				e.CreatedAt.Local().Format("Jan 2, 2006 15:04"),
				render.Score(e.Result.Score),
				render.BandFor(e.Result.Score).Label())
		}
		return nil
	},
}

var showHistoryCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show a past analysis",
	Args:    cobra.ExactArgs(1),
	Example: `  resumatch history show 3f2a9c1b`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		entry, err := a.Store.GetHistoryEntry(args[0])
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("no analysis with id %q", args[0])
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("Analysis "+entry.ID))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Date:"), entry.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
		fmt.Fprintf(out, "%s %d characters\n", labelStyle.Render("Resume:"), entry.ResumeChars)
		fmt.Fprintf(out, "%s %d characters\n\n", labelStyle.Render("Job:"), entry.JobChars)
		fmt.Fprintln(out, render.Result(&entry.Result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(listHistoryCmd)
	historyCmd.AddCommand(showHistoryCmd)

	listHistoryCmd.Flags().IntP("limit", "n", 20, "Number of analyses to show")
}
