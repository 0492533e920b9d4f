package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Best-effort: a .env file may carry ${VAR} values referenced in config.yaml.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
