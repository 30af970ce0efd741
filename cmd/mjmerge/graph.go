package main

import (
	"fmt"

	"github.com/aretw0/mjmerge/internal/presentation/graph"
	"github.com/aretw0/mjmerge/pkg/mjcf"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scene.xml>",
	Short: "Export the kinematic tree visualization",
	Long: `Reads the worldbody of a scene and outputs a Mermaid diagram (graph TD) of its bodies and joints.
With --robot, the bodies belonging to that robot are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := mjcf.Load(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if robot, _ := cmd.Flags().GetString("robot"); robot != "" {
			overlay = &graph.Overlay{Robot: robot}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(root, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("robot", "", "Highlight the bodies of this robot")
}
