package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the generation backend and list available models",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logger, client, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if !client.CheckConnection(ctx) {
		fmt.Printf("backend at %s is not reachable. Is it running?\n", cfg.Backend.BaseURL)
		os.Exit(1)
	}
	fmt.Printf("backend at %s is reachable\n", cfg.Backend.BaseURL)

	models := client.ListModels(ctx)
	if len(models) == 0 {
		logger.Warn("backend advertises no models")
		fmt.Println("no models available; pull one first")
		return nil
	}

	fmt.Println("available models:")
	for _, m := range models {
		marker := "  "
		if m == cfg.Backend.Model {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, m)
	}
	return nil
}
