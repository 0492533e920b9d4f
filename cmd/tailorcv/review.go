package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
)

var reviewCmd = &cobra.Command{
	Use:   "review <resume-file>",
	Short: "Review a resume without a job description",
	Long:  "Reads a resume (.pdf, .docx or .txt) and asks the backend for general ATS-oriented feedback.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}

	resumeText, err := document.Extract(args[0])
	if err != nil {
		return err
	}

	a, err := buildAnalyzer(cfg, client, logger)
	if err != nil {
		return err
	}

	feedback, err := a.ReviewResume(cmd.Context(), resumeText)
	if err != nil {
		logger.Error("resume review failed", "error", err)
		return fmt.Errorf("review failed: check that the backend is running (tailorcv check)")
	}

	fmt.Println(feedback)
	return nil
}
