package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps <resume-file> <jd-file>",
	Short: "Identify gaps between a resume and a job's requirements",
	Args:  cobra.ExactArgs(2),
	RunE:  runGaps,
}

func init() {
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, args []string) error {
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

	a, err := buildAnalyzer(cfg, client, logger)
	if err != nil {
		return err
	}

	gaps, err := a.IdentifyGaps(cmd.Context(), resumeText, jobDescription)
	if err != nil {
		logger.Error("gap analysis failed", "error", err)
		return fmt.Errorf("gap analysis failed: check that the backend is running (tailorcv check)")
	}

	fmt.Println(gaps)
	return nil
}
