package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RishabhK9/cloudist/internal/credentials"
	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/pipeline"
	"github.com/RishabhK9/cloudist/internal/workspace"
)

// credentialFlags binds the overlay fields shared by every execution command.
func credentialFlags(cmd *cobra.Command, overlay *credentials.Overlay) {
	cmd.Flags().StringVar(&overlay.AccessKeyID, "access-key-id", "", "AWS access key ID")
	cmd.Flags().StringVar(&overlay.SecretAccessKey, "secret-access-key", "", "AWS secret access key")
	cmd.Flags().StringVar(&overlay.Region, "region", "", "AWS region override")
	cmd.Flags().StringVar(&overlay.ProjectRef, "project-ref", "", "existing Supabase project reference")
	cmd.Flags().StringVar(&overlay.PluginCacheDir, "plugin-cache-dir", "", "provider plugin cache directory")
}

// checkOverlay runs the superficial format checks on whichever credential
// fields were supplied. Empty fields are fine; the ambient environment may
// carry them instead.
func checkOverlay(o credentials.Overlay) error {
	if o.AccessKeyID != "" {
		if err := credentials.CheckAccessKeyID(o.AccessKeyID); err != nil {
			return err
		}
	}
	if o.SecretAccessKey != "" {
		if err := credentials.CheckSecretAccessKey(o.SecretAccessKey); err != nil {
			return err
		}
	}
	if o.Region != "" {
		if err := credentials.CheckRegion(o.Region); err != nil {
			return err
		}
	}
	if o.ProjectRef != "" {
		if err := credentials.CheckProjectRef(o.ProjectRef); err != nil {
			return err
		}
	}
	return nil
}

func newDeployer() (*pipeline.Deployer, error) {
	ws, err := workspace.NewManager(sandboxRoot)
	if err != nil {
		return nil, err
	}
	return pipeline.NewDeployer(ws, toolBinary), nil
}

// generateFromFile is the shared front half of the execution commands.
func generateFromFile(ctx context.Context, path string) (*model.GeneratedArtifact, error) {
	graph, err := readGraph(path)
	if err != nil {
		return nil, err
	}
	return pipeline.Generate(ctx, graph.Nodes, graph.Edges, graph.Provider), nil
}

func newValidateCmd() *cobra.Command {
	var overlay credentials.Overlay

	cmd := &cobra.Command{
		Use:   "validate <graph.json>",
		Short: "Generate the artifact and run the tool's validate against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOverlay(overlay); err != nil {
				return err
			}
			artifact, err := generateFromFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			d, err := newDeployer()
			if err != nil {
				return err
			}
			if err := d.Check(cmd.Context(), artifact, overlay.Env()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Artifact is valid.")
			return nil
		},
	}

	credentialFlags(cmd, &overlay)
	return cmd
}

func newPlanCmd() *cobra.Command {
	var overlay credentials.Overlay

	cmd := &cobra.Command{
		Use:   "plan <graph.json>",
		Short: "Generate the artifact and show what a deploy would change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOverlay(overlay); err != nil {
				return err
			}
			artifact, err := generateFromFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			d, err := newDeployer()
			if err != nil {
				return err
			}
			summary, _, err := d.Preview(cmd.Context(), artifact, overlay.Env())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan: %d to add, %d to change, %d to destroy.\n",
				summary.ToAdd, summary.ToChange, summary.ToDestroy)
			return nil
		},
	}

	credentialFlags(cmd, &overlay)
	return cmd
}

func newApplyCmd() *cobra.Command {
	var overlay credentials.Overlay

	cmd := &cobra.Command{
		Use:   "apply <graph.json>",
		Short: "Generate the artifact and deploy it end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOverlay(overlay); err != nil {
				return err
			}
			artifact, err := generateFromFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			d, err := newDeployer()
			if err != nil {
				return err
			}
			report, err := d.Deploy(cmd.Context(), artifact, overlay.Env())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied: %d added, %d changed, %d destroyed.\n",
				report.Summary.ToAdd, report.Summary.ToChange, report.Summary.ToDestroy)
			return nil
		},
	}

	credentialFlags(cmd, &overlay)
	return cmd
}
