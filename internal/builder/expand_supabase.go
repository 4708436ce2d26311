package builder

import "github.com/RishabhK9/cloudist/internal/model"

func init() {
	register("supabase", "database", expandSupabaseProject)
	register("supabase", "project", expandSupabaseProject)
}

// expandSupabaseProject emits a managed database project. Organization and
// password always come from variables; the synthesizer declares them (with
// the password marked sensitive) whenever this category is present.
func expandSupabaseProject(name string, cfg map[string]any) []*model.TerraformResource {
	return []*model.TerraformResource{{
		Type: "supabase_project",
		Name: name,
		Config: model.NewConfig().
			Set("organization_id", "var.supabase_organization_id").
			Set("name", strVal(cfg, "projectName", hyphenate(name))).
			Set("database_password", "var.supabase_db_password").
			Set("region", strVal(cfg, "region", "us-east-1")),
	}}
}
