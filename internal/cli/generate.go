package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/pipeline"
)

func newGenerateCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:     "generate <graph.json>",
		Short:   "Generate Terraform HCL from an exported canvas graph",
		Example: "  cloudist generate canvas.json -o main.tf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := readGraph(args[0])
			if err != nil {
				return err
			}

			artifact := pipeline.Generate(cmd.Context(), graph.Nodes, graph.Edges, graph.Provider)

			if outFile == "" {
				fmt.Fprint(cmd.OutOrStdout(), artifact.SerializedText)
				return nil
			}
			if err := os.WriteFile(outFile, []byte(artifact.SerializedText), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outFile, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the artifact to this file instead of stdout")
	return cmd
}

func readGraph(path string) (model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Graph{}, fmt.Errorf("reading graph file %s: %w", path, err)
	}
	return model.DecodeGraph(data)
}
