package hclgen

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhK9/cloudist/internal/builder"
	"github.com/RishabhK9/cloudist/internal/model"
	"github.com/RishabhK9/cloudist/internal/synth"
)

// parseHCL asserts the serialized text is syntactically valid HCL.
func parseHCL(t *testing.T, text string) {
	t.Helper()
	_, diags := hclsyntax.ParseConfig([]byte(text), "main.tf", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "serialized text must parse: %s", diags.Error())
}

func artifactFor(t *testing.T, nodes []model.BlockNode, edges []model.Edge) *model.GeneratedArtifact {
	t.Helper()
	resources := builder.Build(context.Background(), nodes, edges, "aws")
	artifact := &model.GeneratedArtifact{
		Provider:  "aws",
		Resources: resources,
		Variables: synth.Variables(resources),
		Outputs:   synth.Outputs(resources),
	}
	Serialize(artifact)
	return artifact
}

var resourceBlockPattern = regexp.MustCompile(`(?m)^resource "`)

func TestSerializeRoundTripResourceCount(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "a", ServiceType: "s3", Name: "media", Config: map[string]any{"versioning": true}},
		{ID: "b", ServiceType: "sqs", Name: "jobs", Config: map[string]any{"deadLetterQueue": true, "maxReceiveCount": float64(3)}},
		{ID: "c", ServiceType: "ec2", Name: "web"},
	}, nil)

	parseHCL(t, artifact.SerializedText)

	count := len(resourceBlockPattern.FindAllString(artifact.SerializedText, -1))
	assert.Equal(t, artifact.ResourceCount(), count)
}

func TestSerializeOrdering(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "a", ServiceType: "ec2", Name: "web"},
	}, nil)
	text := artifact.SerializedText

	tfPos := strings.Index(text, "terraform {")
	varPos := strings.Index(text, `variable "environment"`)
	resPos := strings.Index(text, `resource "aws_instance"`)
	outPos := strings.Index(text, `output "web_public_ip"`)

	require.GreaterOrEqual(t, tfPos, 0)
	assert.Less(t, tfPos, varPos)
	assert.Less(t, varPos, resPos)
	assert.Less(t, resPos, outPos)
}

func TestSerializeHeredocPreservesNewlines(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "a", ServiceType: "lambda", Name: "worker"},
	}, nil)
	text := artifact.SerializedText

	parseHCL(t, text)
	assert.Contains(t, text, "<<-EOT")
	assert.Contains(t, text, `"Version": "2012-10-17"`)
	assert.Contains(t, text, `"Service": "lambda.amazonaws.com"`)
}

func TestSerializeRawExpressionsUnquoted(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "a", ServiceType: "s3", Name: "media"},
	}, nil)
	text := artifact.SerializedText

	// Back-references render as expressions, not strings.
	assert.Regexp(t, `bucket\s+= aws_s3_bucket\.media\.id`, text)
	assert.NotContains(t, text, `"aws_s3_bucket.media.id"`)
	// The provider preamble references the region variable unquoted.
	assert.Regexp(t, `region\s+= var\.aws_region`, text)
}

func TestSerializeQuotedStringEscaping(t *testing.T) {
	r := &model.TerraformResource{
		Type:   "aws_instance",
		Name:   "web",
		Config: model.NewConfig().Set("user_data_note", `say "hello"`),
	}
	artifact := &model.GeneratedArtifact{Provider: "aws", Resources: []*model.TerraformResource{r}}
	text := Serialize(artifact)

	parseHCL(t, text)
	assert.Contains(t, text, `"say \"hello\""`)
}

func TestSerializeTagsInlineMap(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "a", ServiceType: "ec2", Name: "web"},
	}, nil)
	text := artifact.SerializedText

	parseHCL(t, text)
	// tags render as an inline object argument, not a nested block.
	assert.Regexp(t, `tags\s*=\s*\{`, text)
	assert.NotRegexp(t, `tags\s*\{`, text)
}

func TestSerializeNestedBlock(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "a", ServiceType: "s3", Name: "media", Config: map[string]any{"versioning": true}},
	}, nil)
	text := artifact.SerializedText

	parseHCL(t, text)
	// versioning_configuration is a block, so no equals sign.
	assert.Regexp(t, `versioning_configuration\s*\{`, text)
	assert.Regexp(t, `status\s+= "Enabled"`, text)
}

func TestSerializeDependsOn(t *testing.T) {
	artifact := artifactFor(t, []model.BlockNode{
		{ID: "gw", ServiceType: "apigateway", Name: "api"},
		{ID: "db", ServiceType: "dynamodb", Name: "items"},
	}, []model.Edge{{SourceID: "gw", TargetID: "db"}})
	text := artifact.SerializedText

	parseHCL(t, text)
	assert.Regexp(t, `depends_on\s+= \[aws_api_gateway_rest_api\.api\]`, text)
}

func TestSerializeListValues(t *testing.T) {
	r := &model.TerraformResource{
		Type: "aws_lb",
		Name: "edge",
		Config: model.NewConfig().
			Set("subnets", []any{"subnet-1", "subnet-2"}).
			Set("security_groups", []any{"aws_security_group.edge.id"}),
	}
	artifact := &model.GeneratedArtifact{Provider: "aws", Resources: []*model.TerraformResource{r}}
	text := Serialize(artifact)

	parseHCL(t, text)
	assert.Regexp(t, `subnets\s+= \["subnet-1", "subnet-2"\]`, text)
	assert.Regexp(t, `security_groups\s+= \[aws_security_group\.edge\.id\]`, text)
}

func TestSerializeSensitiveVariable(t *testing.T) {
	artifact := &model.GeneratedArtifact{
		Provider: "aws",
		Variables: []model.Variable{
			{Name: "db_password", Type: "string", Sensitive: true},
		},
	}
	text := Serialize(artifact)

	parseHCL(t, text)
	assert.Contains(t, text, "sensitive = true")
	assert.Regexp(t, `type\s+= string`, text)
}

func TestSerializeNeverReordersResources(t *testing.T) {
	nodes := []model.BlockNode{
		{ID: "z", ServiceType: "dynamodb", Name: "zeta"},
		{ID: "a", ServiceType: "ec2", Name: "alpha"},
	}
	artifact := artifactFor(t, nodes, nil)
	text := artifact.SerializedText

	zetaPos := strings.Index(text, `resource "aws_dynamodb_table" "zeta"`)
	alphaPos := strings.Index(text, `resource "aws_instance" "alpha"`)
	require.GreaterOrEqual(t, zetaPos, 0)
	require.GreaterOrEqual(t, alphaPos, 0)
	assert.Less(t, zetaPos, alphaPos)
}
