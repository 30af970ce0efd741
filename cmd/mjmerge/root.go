package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mjmerge",
	Short: "mjmerge combines MuJoCo robot models into a single scene",
	Long: `mjmerge loads several MJCF models and writes one scene containing all of them.
Identifiers are prefixed with the robot name, mesh and texture paths are made
absolute and shared settings keep the value of the first model that sets them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
