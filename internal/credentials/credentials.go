// Package credentials builds the environment overlay for credential
// injection and offers superficial format checks on its parts. Real
// validation and storage belong to external collaborators; everything here
// is shape-checking only.
package credentials

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Overlay carries the provider credentials and performance knobs injected
// into a provisioning run. The executor treats it as opaque key/value pairs.
type Overlay struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string

	// ProjectRef targets an existing managed-database project, as a UUID or
	// the provider's 20-char reference form.
	ProjectRef string

	// PluginCacheDir, when set, points the tool at a shared provider-plugin
	// cache. Performance-only; never required for correctness.
	PluginCacheDir string
}

// Env renders the overlay as environment variables. Empty fields are
// omitted so the ambient environment shows through.
func (o Overlay) Env() map[string]string {
	env := make(map[string]string, 5)
	if o.AccessKeyID != "" {
		env["AWS_ACCESS_KEY_ID"] = o.AccessKeyID
	}
	if o.SecretAccessKey != "" {
		env["AWS_SECRET_ACCESS_KEY"] = o.SecretAccessKey
	}
	if o.Region != "" {
		env["AWS_DEFAULT_REGION"] = o.Region
	}
	if o.ProjectRef != "" {
		env["SUPABASE_PROJECT_REF"] = o.ProjectRef
	}
	if o.PluginCacheDir != "" {
		env["TF_PLUGIN_CACHE_DIR"] = o.PluginCacheDir
	}
	return env
}

var (
	accessKeyPattern = regexp.MustCompile(`^(AKIA|ASIA)[A-Z0-9]{12,}$`)
	regionPattern    = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
	projectRefShape  = regexp.MustCompile(`^[a-z]{20}$`)
)

// CheckAccessKeyID verifies the key has a known prefix and plausible length.
func CheckAccessKeyID(key string) error {
	if !accessKeyPattern.MatchString(key) {
		return fmt.Errorf("access key ID %q does not look like an AWS access key", mask(key))
	}
	return nil
}

// CheckSecretAccessKey verifies minimum length only; secrets have no fixed
// alphabet worth encoding here.
func CheckSecretAccessKey(secret string) error {
	if len(secret) < 30 {
		return fmt.Errorf("secret access key is too short (%d chars)", len(secret))
	}
	return nil
}

// CheckRegion verifies the region-equivalent has the usual xx-name-n shape.
func CheckRegion(region string) error {
	if !regionPattern.MatchString(region) {
		return fmt.Errorf("region %q does not match the expected pattern", region)
	}
	return nil
}

// CheckProjectRef accepts either a UUID or the 20-char lowercase reference
// shape managed-database projects use.
func CheckProjectRef(ref string) error {
	if _, err := uuid.Parse(ref); err == nil {
		return nil
	}
	if projectRefShape.MatchString(ref) {
		return nil
	}
	return fmt.Errorf("project reference %q is neither a UUID nor a project ref", ref)
}

// mask keeps the identifying prefix of a credential and hides the rest.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
