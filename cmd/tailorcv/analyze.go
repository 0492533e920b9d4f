package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
	"github.com/rkaushal27/tailorcv/internal/ledger"
)

var (
	analyzeBackground string
	analyzeCompany    string
	analyzeNotes      string
	analyzeModel      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file> <jd-file>",
	Short: "Score a resume against a job description",
	Long: "Scores ATS compatibility of a resume (.pdf, .docx or .txt) against a job\n" +
		"description file, prints the feedback and interpretation, and optionally\n" +
		"records the result in the application ledger.",
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeBackground, "background", "", "file with candidate background context")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "company name; records the analysis in the ledger")
	analyzeCmd.Flags().StringVar(&analyzeNotes, "notes", "", "free-text note for the ledger entry")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "override the configured model for this call")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	if analyzeModel != "" {
		client = client.WithModel(analyzeModel)
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
	if analyzeBackground != "" {
		background, err = document.Extract(analyzeBackground)
		if err != nil {
			return err
		}
	}

	a, err := buildAnalyzer(cfg, client, logger)
	if err != nil {
		return err
	}

	s, feedback, err := a.AnalyzeCompatibility(cmd.Context(), resumeText, jobDescription, background)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		return fmt.Errorf("analysis failed: check that the backend is running (tailorcv check)")
	}

	printInterpretation(s, a.Interpret(s))
	fmt.Println()
	fmt.Println(feedback)

	if analyzeCompany != "" {
		led, err := openLedger(cfg, logger)
		if err != nil {
			logger.Error("ledger unavailable", "error", err)
			fmt.Println("warning: analysis was not recorded: ledger unavailable")
			return nil
		}
		rec := ledger.Record{
			Company:       analyzeCompany,
			Date:          time.Now(),
			ResumeCreated: false,
			ATSScore:      s,
			JobSummary:    truncate(jobDescription, 100),
			Notes:         analyzeNotes,
		}
		if err := led.Append(rec); err != nil {
			logger.Error("recording analysis failed", "error", err)
			fmt.Println("warning: analysis was not recorded: retry with tailorcv track")
			return nil
		}
		fmt.Printf("recorded analysis for %s\n", analyzeCompany)
	}
	return nil
}

// truncate shortens text to at most max characters with an ellipsis.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
