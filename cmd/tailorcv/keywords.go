package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <jd-file>",
	Short: "Extract screening keywords from a job description",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywords,
}

var matchCmd = &cobra.Command{
	Use:   "match <resume-file> <jd-file>",
	Short: "Quick deterministic keyword match, no backend call",
	Long: "Intersects the configured keyword vocabulary with the job description and\n" +
		"reports which of those terms the resume covers.",
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(matchCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}

	jobDescription, err := document.Extract(args[0])
	if err != nil {
		return err
	}

	a, err := buildAnalyzer(cfg, client, logger)
	if err != nil {
		return err
	}

	keywords, err := a.ExtractKeywords(cmd.Context(), jobDescription)
	if err != nil {
		logger.Error("keyword extraction failed", "error", err)
		return fmt.Errorf("keyword extraction failed: check that the backend is running (tailorcv check)")
	}

	fmt.Println(keywords)
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
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

	result := a.QuickKeywordCheck(resumeText, jobDescription)
	if result.TotalChecked == 0 {
		fmt.Println("none of the configured keywords appear in the job description")
		return nil
	}

	fmt.Printf("match rate: %.2f%% (%d/%d keywords)\n", result.MatchRate, len(result.Matched), result.TotalChecked)
	if len(result.Matched) > 0 {
		fmt.Println("\nmatched:")
		for _, kw := range result.Matched {
			fmt.Printf("  + %s\n", kw)
		}
	}
	if len(result.Missing) > 0 {
		fmt.Println("\nmissing from resume:")
		for _, kw := range result.Missing {
			fmt.Printf("  - %s\n", kw)
		}
	}
	return nil
}
