package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
	"github.com/rkaushal27/tailorcv/internal/generator"
	"github.com/rkaushal27/tailorcv/internal/ledger"
)

var (
	generateBackground string
	generateCompany    string
	generateOutput     string
	generateStream     bool
	generateModel      string
)

var generateCmd = &cobra.Command{
	Use:   "generate <resume-file> <jd-file>",
	Short: "Generate a resume tailored to a job description",
	Long: "Rewrites the base resume to target the job description. The result goes to\n" +
		"--output (or stdout), with an advisory validation report on stderr-level logs.",
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateBackground, "background", "", "file with candidate background context")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "company name; records the generation in the ledger")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the tailored resume to this file")
	generateCmd.Flags().BoolVar(&generateStream, "stream", false, "stream generation output as it is produced")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "override the configured model for this call")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}
	if generateModel != "" {
		client = client.WithModel(generateModel)
	}

	baseResume, err := document.Extract(args[0])
	if err != nil {
		return err
	}
	jobDescription, err := document.Extract(args[1])
	if err != nil {
		return err
	}

	background := ""
	if generateBackground != "" {
		background, err = document.Extract(generateBackground)
		if err != nil {
			return err
		}
	}

	gen, err := buildGenerator(cfg, client, logger)
	if err != nil {
		return err
	}

	var generated string
	if generateStream {
		var userPrompt, systemPrompt string
		userPrompt, systemPrompt, err = gen.TailoringPrompt(baseResume, jobDescription, background)
		if err == nil {
			var sb strings.Builder
			for chunk := range client.Stream(cmd.Context(), userPrompt, systemPrompt) {
				fmt.Print(chunk)
				sb.WriteString(chunk)
			}
			fmt.Println()
			generated = sb.String()
			if strings.TrimSpace(generated) == "" {
				err = fmt.Errorf("stream produced no output")
			}
		}
	} else {
		generated, err = gen.GenerateTailoredResume(cmd.Context(), baseResume, jobDescription, background)
	}
	if err != nil {
		logger.Error("generation failed", "error", err)
		return fmt.Errorf("generation failed: check inputs and that the backend is running (tailorcv check)")
	}

	generated = generator.FormatResume(generated)

	validation := gen.Validate(generated, baseResume)
	if !validation.IsValid {
		fmt.Fprintln(os.Stderr, "validation issues (advisory):")
		for _, issue := range validation.Issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
	}

	if generateOutput != "" {
		if err := os.WriteFile(generateOutput, []byte(generated+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("tailored resume written to %s\n", generateOutput)
	} else if !generateStream {
		fmt.Println(generated)
	}

	if generateCompany != "" {
		led, err := openLedger(cfg, logger)
		if err != nil {
			logger.Error("ledger unavailable", "error", err)
			fmt.Println("warning: generation was not recorded: ledger unavailable")
			return nil
		}
		rec := ledger.Record{
			Company:       generateCompany,
			Date:          time.Now(),
			ResumeCreated: true,
			JobSummary:    truncate(jobDescription, 100),
		}
		if err := led.Append(rec); err != nil {
			logger.Error("recording generation failed", "error", err)
			fmt.Println("warning: generation was not recorded: retry with tailorcv track")
		} else {
			fmt.Printf("recorded generation for %s\n", generateCompany)
		}
	}
	return nil
}
