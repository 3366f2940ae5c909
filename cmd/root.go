package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/session"
	"github.com/spf13/cobra"
)

// application is kept so Execute can close it after the command returns
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "resumatch",
	Short: "Score how well a resume matches a job description",
	Long: `ResuMatch sends your resume and a job description to the analysis backend
and shows the match score, a keyword/meaning breakdown and the keywords your
resume is missing.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		apiURL, _ := cmd.Flags().GetString("api-url")
		verbose, _ := cmd.Flags().GetBool("verbose")

		a, err := app.NewApp(cmd.Context(), app.Options{
			APIURL:  apiURL,
			Verbose: verbose,
			Alerter: stderrAlerter(cmd),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a

		cmd.SetContext(app.WithApp(cmd.Context(), a))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if application != nil {
		application.Close()
	}

	if err != nil {
		// Alerted failures were already shown to the user
		if !errors.Is(err, session.ErrAlerted) {
			fmt.Fprintln(os.Stderr, alertStyle.Render("Error: "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func stderrAlerter(cmd *cobra.Command) session.Alerter {
	return session.AlertFunc(func(message string) {
		fmt.Fprintln(cmd.ErrOrStderr(), alertStyle.Render("⚠ "+message))
	})
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Analysis backend URL (overrides api_url)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr at debug level")
}
