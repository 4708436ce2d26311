// Package pipeline composes the generation stages and wraps the
// provisioning tool's subcommands around the executor.
package pipeline

import (
	"context"

	"github.com/RishabhK9/cloudist/internal/builder"
	"github.com/RishabhK9/cloudist/internal/ctxlog"
	"github.com/RishabhK9/cloudist/internal/hclgen"
	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/synth"
)

// Generate runs the full generation pipeline: builder → synthesizer →
// serializer. It is pure computation and never fails; malformed blocks
// degrade to pass-through resources with generated defaults.
func Generate(ctx context.Context, nodes []model.BlockNode, edges []model.Edge, provider string) *model.GeneratedArtifact {
	logger := ctxlog.FromContext(ctx)

	resources := builder.Build(ctx, nodes, edges, provider)
	artifact := &model.GeneratedArtifact{
		Provider:  provider,
		Resources: resources,
		Variables: synth.Variables(resources),
		Outputs:   synth.Outputs(resources),
	}
	hclgen.Serialize(artifact)

	logger.Info("Artifact generated.",
		"provider", provider,
		"blocks", len(nodes),
		"resources", len(artifact.Resources),
		"variables", len(artifact.Variables),
		"outputs", len(artifact.Outputs),
	)
	return artifact
}
