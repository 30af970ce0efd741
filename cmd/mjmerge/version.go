package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mjmerge"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mjmerge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mjmerge version %s\n", strings.TrimSpace(mjmerge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
