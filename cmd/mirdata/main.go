// Package main provides the mirdata binary: the offline pipeline that
// turns the raw question bank into the per-year exam files, dissection
// datasets, and manifest served by the API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirdata",
		Short: "MIR exam data pipeline",
		Long: `mirdata maintains the static data directory served by the backend.

It provides:
- split: turn the combined question bank into per-year exam files and a manifest
- dissect: classify one year's questions with the LLM tagging pipeline
- validate: schema-check every document in a data directory`,
	}

	cmd.AddCommand(splitCmd())
	cmd.AddCommand(dissectCmd())
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mirdata version %s\n", version)
		},
	})

	return cmd
}
