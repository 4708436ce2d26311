// Package synth derives variable and output declarations from a generated
// resource set. Everything here is additive and keyed on category presence;
// an absent category simply contributes nothing.
package synth

import (
	"fmt"

	"github.com/RishabhK9/cloudist/internal/model"
)

// Variables returns the artifact's input variables: a fixed baseline plus
// conditional entries for categories that need caller-supplied values.
func Variables(resources []*model.TerraformResource) []model.Variable {
	vars := []model.Variable{
		{
			Name:        "environment",
			Type:        "string",
			Description: "Deployment environment name",
			Default:     "dev",
		},
		{
			Name:        "aws_region",
			Type:        "string",
			Description: "AWS region to deploy into",
			Default:     "us-east-1",
		},
	}

	if hasType(resources, "supabase_project") {
		vars = append(vars,
			model.Variable{
				Name:        "supabase_organization_id",
				Type:        "string",
				Description: "Supabase organization the project is created under",
			},
			model.Variable{
				Name:        "supabase_db_password",
				Type:        "string",
				Description: "Database password for the Supabase project",
				Sensitive:   true,
			},
		)
	}

	if hasInlineArchive(resources) {
		vars = append(vars,
			model.Variable{
				Name:        "lambda_src_dir",
				Type:        "string",
				Description: "Directory containing the inline function source",
				Default:     "./src",
			},
			model.Variable{
				Name:        "lambda_zip_path",
				Type:        "string",
				Description: "Path the packaged function archive is written to",
				Default:     "./lambda.zip",
			},
		)
	}

	return vars
}

// Outputs returns per-resource outputs keyed by resource category. One
// resource may contribute several outputs; unsupported types contribute none.
func Outputs(resources []*model.TerraformResource) []model.Output {
	var outs []model.Output

	for _, r := range resources {
		if r.DataSource {
			continue
		}
		qn := r.QualifiedName()

		switch r.Type {
		case "aws_instance":
			outs = append(outs, model.Output{
				Name:  r.Name + "_public_ip",
				Value: qn + ".public_ip",
			})
		case "aws_api_gateway_rest_api":
			outs = append(outs,
				model.Output{Name: r.Name + "_id", Value: qn + ".id"},
				model.Output{Name: r.Name + "_arn", Value: qn + ".arn"},
				model.Output{Name: r.Name + "_execution_arn", Value: qn + ".execution_arn"},
			)
		case "aws_s3_bucket":
			outs = append(outs, model.Output{
				Name:  r.Name + "_bucket_name",
				Value: qn + ".bucket",
			})
		case "aws_dynamodb_table":
			outs = append(outs,
				model.Output{Name: r.Name + "_table_name", Value: qn + ".name"},
				model.Output{Name: r.Name + "_table_arn", Value: qn + ".arn"},
			)
		case "aws_db_instance":
			outs = append(outs, model.Output{
				Name:  r.Name + "_endpoint",
				Value: qn + ".endpoint",
			})
		case "aws_lb":
			outs = append(outs, model.Output{
				Name:  r.Name + "_dns_name",
				Value: qn + ".dns_name",
			})
		case "aws_lambda_function":
			outs = append(outs,
				model.Output{Name: r.Name + "_function_name", Value: qn + ".function_name"},
				model.Output{Name: r.Name + "_function_arn", Value: qn + ".arn"},
			)
			if archive := fmt.Sprintf("data.archive_file.%s_zip", r.Name); hasQualified(resources, archive) {
				outs = append(outs, model.Output{
					Name:  r.Name + "_code_location",
					Value: archive + ".output_path",
				})
			}
		case "supabase_project":
			outs = append(outs,
				model.Output{Name: r.Name + "_project_id", Value: qn + ".id"},
				model.Output{Name: r.Name + "_project_url", Value: qn + ".api_url"},
				model.Output{Name: r.Name + "_database_host", Value: qn + ".database_host"},
				model.Output{Name: r.Name + "_anon_key", Value: qn + ".anon_key", Sensitive: true},
				model.Output{Name: r.Name + "_service_role_key", Value: qn + ".service_role_key", Sensitive: true},
			)
		}
	}

	return outs
}

func hasType(resources []*model.TerraformResource, resourceType string) bool {
	for _, r := range resources {
		if r.Type == resourceType {
			return true
		}
	}
	return false
}

func hasInlineArchive(resources []*model.TerraformResource) bool {
	for _, r := range resources {
		if r.DataSource && r.Type == "archive_file" {
			return true
		}
	}
	return false
}

func hasQualified(resources []*model.TerraformResource, qualified string) bool {
	for _, r := range resources {
		if r.QualifiedName() == qualified {
			return true
		}
	}
	return false
}
