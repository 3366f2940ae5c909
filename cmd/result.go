package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/render"
	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Show the current analysis result",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		result := a.Page.Result()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if result == nil {
				return app.ErrNoResult
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Fprintln(cmd.OutOrStdout(), render.Result(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultCmd)
	resultCmd.Flags().Bool("json", false, "Print the result as JSON")
}
