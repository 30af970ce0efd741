package main

import (
	"github.com/aretw0/mjmerge/internal/cli"
	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge [name=file...]",
	Short: "Merge robot models into one scene",
	Long: `Merges the robots listed in the scene manifest (--config) followed by the
name=file arguments, in that order, and prints the path of the resulting scene.
A single robot is returned as is.`,
	Example: `  mjmerge merge arm=arm.xml gripper=gripper.xml -o scene.xml
  mjmerge merge --config scene.yaml --report --verify
  mjmerge merge --config scene.yaml --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{Robots: args, Stdout: cmd.OutOrStdout()}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Model, _ = cmd.Flags().GetString("model")
		opts.Verify, _ = cmd.Flags().GetBool("verify")
		opts.Report, _ = cmd.Flags().GetBool("report")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		return cli.Execute(opts)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringP("config", "c", "", "Scene manifest (YAML or JSON)")
	mergeCmd.Flags().StringP("output", "o", "", "Output path (default $TMPDIR/mc_mujoco.xml)")
	mergeCmd.Flags().String("model", "", "Model name of the merged scene (default mc_mujoco)")
	mergeCmd.Flags().Bool("verify", false, "Check the merged scene for colliding names")
	mergeCmd.Flags().Bool("report", false, "Print a merge report with the resolved conflicts")
	mergeCmd.Flags().BoolP("watch", "w", false, "Merge again whenever an input model changes")
}
