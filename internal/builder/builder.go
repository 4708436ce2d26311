package builder

import (
	"context"
	"sort"

	"github.com/RishabhK9/cloudist/internal/ctxlog"
	"github.com/RishabhK9/cloudist/internal/graph"
	"github.com/RishabhK9/cloudist/internal/model"
)

// expansionKey identifies one entry in the strategy table.
type expansionKey struct {
	Provider string
	Service  string
}

// expandFunc maps one block to its resources. The first returned resource
// is the base; satellites follow, already wired with their dependencies on
// the base.
type expandFunc func(name string, cfg map[string]any) []*model.TerraformResource

// expansions is the strategy table. Entries are registered from the
// per-provider expansion files via register.
var expansions = map[expansionKey]expandFunc{}

func register(provider, service string, fn expandFunc) {
	expansions[expansionKey{Provider: provider, Service: service}] = fn
}

// Build derives the resource list for the given canvas state. It is a pure
// computation: no I/O, no retained state, and it never fails — recoverable
// input gaps are patched with generated defaults and unknown service types
// pass through unexpanded.
func Build(ctx context.Context, nodes []model.BlockNode, edges []model.Edge, provider string) []*model.TerraformResource {
	logger := ctxlog.FromContext(ctx)

	// Track the block graph separately to warn about cycles up front.
	// Terraform would reject a cyclic artifact, but generation itself
	// proceeds; the builder's failure policy is to never throw.
	blockGraph := graph.New()
	for _, nd := range nodes {
		blockGraph.AddNode(nd.ID)
	}
	for _, e := range edges {
		if err := blockGraph.AddEdge(e.SourceID, e.TargetID); err != nil {
			logger.Debug("Ignoring unusable edge.", "source", e.SourceID, "target", e.TargetID, "error", err)
		}
	}
	if err := blockGraph.DetectCycles(); err != nil {
		logger.Warn("Canvas graph contains a dependency cycle; the provisioning tool will reject the artifact.", "error", err)
	}

	resources := make([]*model.TerraformResource, 0, len(nodes))
	baseByNode := make(map[string]*model.TerraformResource, len(nodes))

	for _, nd := range nodes {
		p := nd.Provider
		if p == "" {
			p = provider
		}

		name := SanitizeName(nd.Name)
		if name == "" {
			name = SanitizeName(nd.ServiceType + "_" + nd.ID)
		}
		if name == "" {
			name = uniqueIdentifier("block")
		}

		fn, ok := expansions[expansionKey{Provider: p, Service: nd.ServiceType}]
		var expanded []*model.TerraformResource
		if ok {
			expanded = fn(name, nd.Config)
		} else {
			logger.Debug("No expansion registered; passing block through.", "provider", p, "serviceType", nd.ServiceType)
			expanded = []*model.TerraformResource{passthrough(p, nd.ServiceType, name, nd.Config)}
		}
		if len(expanded) == 0 {
			continue
		}

		baseByNode[nd.ID] = expanded[0]
		resources = append(resources, expanded...)
	}

	// Every connection on the canvas becomes a dependency of the target's
	// base resource on the source's base resource. The block graph already
	// rejected self-referential edges and edges naming unknown blocks, and
	// its insertion-order walk keeps depends_on lists deterministic.
	// Satellite dependencies were wired during expansion and are
	// independent of edges.
	for _, id := range blockGraph.IDs() {
		tgt, ok := baseByNode[id]
		if !ok {
			continue
		}
		deps, err := blockGraph.Dependencies(id)
		if err != nil {
			continue
		}
		for _, depID := range deps {
			if src, ok := baseByNode[depID]; ok {
				tgt.AddDependency(src.QualifiedName())
			}
		}
	}

	logger.Debug("Resource graph built.", "blocks", blockGraph.Len(), "resources", len(resources))
	return resources
}

// passthrough renders an unknown (provider, serviceType) pair as a single
// resource carrying the raw config, keys sorted for determinism.
func passthrough(provider, serviceType, name string, cfg map[string]any) *model.TerraformResource {
	r := &model.TerraformResource{
		Type:   provider + "_" + SanitizeName(serviceType),
		Name:   name,
		Config: model.NewConfig(),
	}
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Config.Set(k, cfg[k])
	}
	return r
}
