package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webrecon.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webrecon",
		Short: "Reconnaissance report for a web target",
		Long: `webrecon fetches a target page and extracts its metadata and phone numbers,
enumerates subdomains with an external tool (sublist3r by default) and probes
for reachable paths with an external tool (dirsearch by default).

Each probe fails independently; the report always shows every section.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
