// Package main provides the entry point for the HireFlux ATS HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_server",
	Short: "HireFlux ATS HTTP API Server",
	Long: "HireFlux ATS tracks jobs, candidate profiles, and applications, and scores\n" +
		"every application against its job with a deterministic 0-100 fit index.",
	// Errors are reported once, below, without dumping usage.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Values already in the environment win over .env entries.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
