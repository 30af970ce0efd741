package main

import (
	"fmt"

	"github.com/aretw0/mjmerge/internal/cli"
	"github.com/aretw0/mjmerge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <scene.xml>",
	Short: "Check a scene for colliding names",
	Long:  `Loads an MJCF file and reports every identifier declared more than once in the same namespace.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := cli.CheckFile(args[0]); err != nil {
			tui.PrintStatus(out, false, "Scene has colliding names")
			return fmt.Errorf("check failed: %w", err)
		}
		tui.PrintStatus(out, true, "Scene is valid!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
