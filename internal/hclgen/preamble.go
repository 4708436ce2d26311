package hclgen

import (
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/RishabhK9/cloudist/internal/model"
)

// providerSource describes the required_providers entry and provider block
// emitted for one target provider. The preamble is a function of the
// provider alone; resource content never changes it.
type providerSource struct {
	LocalName string
	Source    string
	Version   string
	// RegionExpr, when non-empty, is set as the provider's region argument.
	RegionExpr string
}

var providerSources = map[string]providerSource{
	"aws": {
		LocalName:  "aws",
		Source:     "hashicorp/aws",
		Version:    "~> 5.0",
		RegionExpr: "var.aws_region",
	},
	"supabase": {
		LocalName: "supabase",
		Source:    "supabase/supabase",
		Version:   "~> 1.0",
	},
}

func writePreamble(body *hclwrite.Body, provider string) {
	src, known := providerSources[provider]

	tf := body.AppendNewBlock("terraform", nil).Body()
	tf.SetAttributeRaw("required_version", tokensFor(">= 1.3.0"))
	if known {
		rp := tf.AppendNewBlock("required_providers", nil).Body()
		rp.SetAttributeRaw(src.LocalName, orderedObjectTokens(
			model.NewConfig().
				Set("source", src.Source).
				Set("version", src.Version)))
	}
	body.AppendNewline()

	if known {
		p := body.AppendNewBlock("provider", []string{src.LocalName}).Body()
		if src.RegionExpr != "" {
			p.SetAttributeRaw("region", rawTokens(src.RegionExpr))
		}
		body.AppendNewline()
	}
}
