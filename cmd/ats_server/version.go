package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actual version can be specified in the build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("ats_server version: %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
