package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
)

var improveBackground string

var improveCmd = &cobra.Command{
	Use:   "improve <resume-file> <jd-file>",
	Short: "Suggest concrete resume changes for a job description",
	Args:  cobra.ExactArgs(2),
	RunE:  runImprove,
}

func init() {
	rootCmd.AddCommand(improveCmd)
	improveCmd.Flags().StringVar(&improveBackground, "background", "", "file with candidate background context")
}

func runImprove(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}

	resumeText, err := document.Extract(args[0])
	if err != nil {
		return err
	}
	jobDescription, err := document.Extract(args[1])
	if err != nil {
		return err
	}

	background := ""
	if improveBackground != "" {
		background, err = document.Extract(improveBackground)
		if err != nil {
			return err
		}
	}

	gen, err := buildGenerator(cfg, client, logger)
	if err != nil {
		return err
	}

	suggestions, err := gen.SuggestImprovements(cmd.Context(), resumeText, jobDescription, background)
	if err != nil {
		logger.Error("improvement suggestions failed", "error", err)
		return fmt.Errorf("improvement suggestions failed: check that the backend is running (tailorcv check)")
	}

	fmt.Println(suggestions)
	return nil
}
