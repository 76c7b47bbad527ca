package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"aptprice/ml"
	"aptprice/pricing"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Load the model artifact and check its column order",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, path, err := loadModel()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "artifact: %s\n", path)
			fmt.Fprintf(out, "features: %d\n", pricing.FeatureWidth)
			if tree, ok := model.(*ml.DecisionTree); ok {
				fmt.Fprintf(out, "nodes:    %d\n", tree.NodeCount())
				fmt.Fprintf(out, "depth:    %d\n", tree.Depth())
			}
			return nil
		},
	}
}
