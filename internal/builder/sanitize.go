package builder

import (
	"regexp"
	"strings"
)

var nonIdentRun = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeName converts a user-visible block label into a resource
// identifier: lowercase, any run of characters outside [a-z0-9] collapsed to
// a single underscore, leading and trailing underscores stripped. Leading
// digits are also stripped because identifiers must start with a letter.
// Two differently-spelled labels may sanitize to the same identifier; the
// builder does not deduplicate them.
func SanitizeName(raw string) string {
	s := strings.ToLower(raw)
	s = nonIdentRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	s = strings.TrimLeft(s, "0123456789_")
	return s
}

// hyphenate turns a sanitized identifier into the hyphenated spelling some
// cloud-side names require (bucket names, load balancer names).
func hyphenate(ident string) string {
	return strings.ReplaceAll(ident, "_", "-")
}
