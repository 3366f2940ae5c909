package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Edit the resume field",
	Long:  "Paste, upload, view and clear the resume text that gets analyzed",
}

var setResumeCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the resume text",
	Example: `  resumatch resume set --file ~/resume.txt
  pbpaste | resumatch resume set`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		text, err := readInput(cmd)
		if err != nil {
			return err
		}
		if err := a.Page.SetResume(text); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Resume updated (%d characters)\n", utf8.RuneCountInString(text))
		return nil
	},
}

var uploadResumeCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Extract the resume text from a PDF",
	Long: `Send a PDF to the backend parser and replace the resume text with the
extracted text. Only PDF files are accepted.

The type is read from the file content, so a text file renamed to .pdf is
refused.`,
	Args:    cobra.ExactArgs(1),
	Example: `  resumatch resume upload ~/Documents/resume.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, hintStyle.Render("⏳ Extracting text..."))

		file, err := a.Page.UploadResume(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pages := ""
		if file.Pages > 0 {
			pages = fmt.Sprintf(", %d pages", file.Pages)
		}
		fmt.Fprintf(out, "✓ Resume extracted from %s (%d characters%s)\n",
			file.Name, utf8.RuneCountInString(a.Page.Resume()), pages)
		return nil
	},
}

var showResumeCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resume text",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		printField(cmd, "Resume", a.Page.Resume(), "resumatch resume set")
		return nil
	},
}

var clearResumeCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the resume field",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.Page.SetResume(""); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Resume cleared")
		return nil
	},
}

func printField(cmd *cobra.Command, name, text, hint string) {
	out := cmd.OutOrStdout()
	if text == "" {
		fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf("No %s yet. Add one with '%s'", name, hint)))
		return
	}
	fmt.Fprintln(out, titleStyle.Render(name))
	fmt.Fprintln(out, text)
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.AddCommand(setResumeCmd)
	resumeCmd.AddCommand(uploadResumeCmd)
	resumeCmd.AddCommand(showResumeCmd)
	resumeCmd.AddCommand(clearResumeCmd)

	addInputFlags(setResumeCmd)
}
