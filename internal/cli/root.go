// Package cli wires the benchmark configuration, backends and reporting
// into the logbench command.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "logbench",
	Short:   "Latency and throughput benchmark for logging backends",
	Version: version,
	Long: `Logbench measures per-message latency percentiles and aggregate
throughput of logging backends under concurrent load, across a matrix of
synchronous/asynchronous modes, sink kinds, producer counts and message
sizes. Results are appended to a CSV report, one row per scenario.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, print help
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. The caller maps a returned error to a
// non-zero exit status.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(runCmd)
}
