package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "sdramsim",
	Short: "sdramsim simulates an SDRAM controller and the device behind " +
		"it, cycle by cycle.",
	Long: `sdramsim simulates a synchronous DRAM controller together with a ` +
		`behavioural model of the device behind it. It replays a workload of ` +
		`reads and writes through the caller interface, checks every read ` +
		`against the data written earlier, and can record the full command ` +
		`bus trace into a SQLite database.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
