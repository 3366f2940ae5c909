package cmd

import (
	"fmt"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/theme"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
}

var showThemeCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", labelStyle.Render("Theme:"), a.Theme.Current())
		return nil
	},
}

var toggleThemeCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		t, err := a.Theme.Toggle()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", t)
		return nil
	},
}

var setThemeCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Choose a theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		t, err := theme.Parse(args[0])
		if err != nil {
			return err
		}
		if err := a.Theme.Set(t); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(showThemeCmd)
	themeCmd.AddCommand(toggleThemeCmd)
	themeCmd.AddCommand(setThemeCmd)
}
