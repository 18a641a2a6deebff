package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logFormat string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "skyhunter",
	Short: "Skyhunter flight-combat simulator",
	Long:  "Skyhunter runs headless arcade dogfight sessions against AI pilots and replays their logs.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(dashboardCmd)
}
