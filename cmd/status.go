package cmd

import (
	"fmt"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/render"
	"github.com/khrees2412/resumatch/internal/status"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the analysis backend is online",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		s := a.Page.CheckServer(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.StatusBadge(s))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Backend:"), a.API.BaseURL())
		if s == status.Offline {
			fmt.Fprintln(out, hintStyle.Render("Start the backend or point --api-url at it."))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
