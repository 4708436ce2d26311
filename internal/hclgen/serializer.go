package hclgen

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/RishabhK9/cloudist/internal/model"
)

// inlineMapKeys names the attributes that always render as an inline map
// argument instead of a nested block, regardless of value shape.
var inlineMapKeys = map[string]bool{
	"tags":         true,
	"default_tags": true,
	"variables":    true,
}

// Serialize renders the artifact to HCL text. The result is also stored on
// the artifact's SerializedText field for caller convenience.
func Serialize(artifact *model.GeneratedArtifact) string {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	writePreamble(body, artifact.Provider)

	for _, v := range artifact.Variables {
		writeVariable(body, v)
	}
	for _, r := range artifact.Resources {
		writeResource(body, r)
	}
	for _, o := range artifact.Outputs {
		writeOutput(body, o)
	}

	text := string(hclwrite.Format(f.Bytes()))
	artifact.SerializedText = text
	return text
}

func writeVariable(body *hclwrite.Body, v model.Variable) {
	blk := body.AppendNewBlock("variable", []string{v.Name})
	b := blk.Body()
	b.SetAttributeRaw("type", rawTokens(v.Type))
	if v.Description != "" {
		b.SetAttributeRaw("description", tokensFor(v.Description))
	}
	if v.Default != nil {
		b.SetAttributeRaw("default", tokensFor(v.Default))
	}
	if v.Sensitive {
		b.SetAttributeRaw("sensitive", tokensFor(true))
	}
	body.AppendNewline()
}

func writeResource(body *hclwrite.Body, r *model.TerraformResource) {
	blockType := "resource"
	if r.DataSource {
		blockType = "data"
	}
	blk := body.AppendNewBlock(blockType, []string{r.Type, r.Name})
	writeConfig(blk.Body(), r.Config)

	if len(r.Dependencies) > 0 {
		blk.Body().SetAttributeRaw("depends_on",
			rawTokens("["+strings.Join(r.Dependencies, ", ")+"]"))
	}
	body.AppendNewline()
}

func writeOutput(body *hclwrite.Body, o model.Output) {
	blk := body.AppendNewBlock("output", []string{o.Name})
	b := blk.Body()
	b.SetAttributeRaw("value", rawTokens(o.Value))
	if o.Description != "" {
		b.SetAttributeRaw("description", tokensFor(o.Description))
	}
	if o.Sensitive {
		b.SetAttributeRaw("sensitive", tokensFor(true))
	}
	body.AppendNewline()
}

// writeConfig renders every attribute of an ordered config, in order.
// Nested configs and maps become nested blocks unless the key is on the
// inline-map allow-list.
func writeConfig(b *hclwrite.Body, cfg *model.OrderedConfig) {
	if cfg == nil {
		return
	}
	for _, key := range cfg.Keys() {
		value, _ := cfg.Get(key)
		writeAttribute(b, key, value)
	}
}

func writeAttribute(b *hclwrite.Body, key string, value any) {
	switch v := value.(type) {
	case *model.OrderedConfig:
		if inlineMapKeys[key] {
			b.SetAttributeRaw(key, orderedObjectTokens(v))
			return
		}
		writeConfig(b.AppendNewBlock(key, nil).Body(), v)
	case map[string]any:
		if inlineMapKeys[key] {
			b.SetAttributeRaw(key, mapTokens(v))
			return
		}
		writeConfig(b.AppendNewBlock(key, nil).Body(), orderedFromMap(v))
	default:
		b.SetAttributeRaw(key, tokensFor(value))
	}
}
