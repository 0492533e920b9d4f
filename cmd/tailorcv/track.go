package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/browse"
	"github.com/rkaushal27/tailorcv/internal/ledger"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Work with the application ledger",
}

var trackListCmd = &cobra.Command{
	Use:   "list [company]",
	Short: "List applications, optionally filtered by company",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrackList,
}

var trackRecentN int

var trackRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent applications",
	RunE:  runTrackRecent,
}

var trackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate application statistics",
	RunE:  runTrackStats,
}

var trackUpdateFields []string

var trackUpdateCmd = &cobra.Command{
	Use:   "update <company> <timestamp>",
	Short: "Update fields of one ledger entry",
	Long: "Updates the entry keyed by company and timestamp (format: \"2006-01-02 15:04:05\").\n" +
		"Fields are column=value pairs, e.g. --set notes=\"phone screen booked\" --set ats_score=72.",
	Args: cobra.ExactArgs(2),
	RunE: runTrackUpdate,
}

var trackDeleteCmd = &cobra.Command{
	Use:   "delete <company> <timestamp>",
	Short: "Delete the ledger entry keyed by company and timestamp",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrackDelete,
}

var trackBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse applications interactively",
	RunE:  runTrackBrowse,
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackListCmd)
	trackCmd.AddCommand(trackRecentCmd)
	trackCmd.AddCommand(trackStatsCmd)
	trackCmd.AddCommand(trackUpdateCmd)
	trackCmd.AddCommand(trackDeleteCmd)
	trackCmd.AddCommand(trackBrowseCmd)

	trackRecentCmd.Flags().IntVarP(&trackRecentN, "count", "n", 10, "number of entries to show")
	trackUpdateCmd.Flags().StringArrayVar(&trackUpdateFields, "set", nil, "column=value pair to overwrite (repeatable)")
}

func setupLedger() (*ledger.Ledger, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg, debug)
	return openLedger(cfg, logger)
}

func printRecords(records []ledger.Record) {
	if len(records) == 0 {
		fmt.Println("no applications recorded")
		return
	}
	for _, rec := range records {
		scoreField := "N/A"
		if rec.ATSScore != nil {
			scoreField = fmt.Sprintf("%d", *rec.ATSScore)
		}
		created := "No"
		if rec.ResumeCreated {
			created = "Yes"
		}
		fmt.Printf("%-20s  %s  resume:%-3s  score:%-4s  %s\n",
			rec.Company, rec.Date.Format(ledger.DateLayout), created, scoreField, rec.Notes)
	}
}

func runTrackList(cmd *cobra.Command, args []string) error {
	led, err := setupLedger()
	if err != nil {
		return err
	}

	var records []ledger.Record
	if len(args) == 1 {
		records, err = led.FindByCompany(args[0])
	} else {
		records, err = led.All()
	}
	if err != nil {
		return err
	}
	printRecords(records)
	return nil
}

func runTrackRecent(cmd *cobra.Command, args []string) error {
	led, err := setupLedger()
	if err != nil {
		return err
	}
	records, err := led.MostRecent(trackRecentN)
	if err != nil {
		return err
	}
	printRecords(records)
	return nil
}

func runTrackStats(cmd *cobra.Command, args []string) error {
	led, err := setupLedger()
	if err != nil {
		return err
	}
	stats, err := led.Statistics()
	if err != nil {
		return err
	}

	fmt.Printf("total applications: %d\n", stats.TotalApplications)
	fmt.Printf("resumes created:    %d\n", stats.ResumesCreated)
	fmt.Printf("average score:      %.2f\n", stats.AverageScore)
	fmt.Printf("highest score:      %d\n", stats.HighestScore)
	fmt.Printf("lowest score:       %d\n", stats.LowestScore)
	fmt.Printf("companies:          %s\n", strings.Join(stats.Companies, ", "))
	return nil
}

func runTrackUpdate(cmd *cobra.Command, args []string) error {
	led, err := setupLedger()
	if err != nil {
		return err
	}

	date, err := time.Parse(ledger.DateLayout, args[1])
	if err != nil {
		return fmt.Errorf("parse timestamp %q (want %q): %w", args[1], ledger.DateLayout, err)
	}

	updates := make(map[string]string, len(trackUpdateFields))
	for _, pair := range trackUpdateFields {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, want column=value", pair)
		}
		updates[field] = value
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update, pass at least one --set")
	}

	if err := led.Update(args[0], date, updates); err != nil {
		return err
	}
	fmt.Printf("updated entry for %s\n", args[0])
	return nil
}

func runTrackDelete(cmd *cobra.Command, args []string) error {
	led, err := setupLedger()
	if err != nil {
		return err
	}

	date, err := time.Parse(ledger.DateLayout, args[1])
	if err != nil {
		return fmt.Errorf("parse timestamp %q (want %q): %w", args[1], ledger.DateLayout, err)
	}

	if err := led.Delete(args[0], date); err != nil {
		return err
	}
	fmt.Printf("deleted entry for %s\n", args[0])
	return nil
}

func runTrackBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg, debug)

	led, err := openLedger(cfg, logger)
	if err != nil {
		return err
	}
	records, err := led.All()
	if err != nil {
		return err
	}

	return browse.Run(records, cfg.Scoring)
}
