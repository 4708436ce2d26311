package builder

import (
	"time"

	"github.com/google/uuid"
)

// The helpers below fill gaps in block configs with generated defaults
// instead of failing the build.

// strVal returns cfg[key] as a string, or fallback when absent or not a string.
func strVal(cfg map[string]any, key, fallback string) string {
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// boolVal returns cfg[key] as a bool, or false when absent. JSON booleans
// arrive as bool; anything else is treated as unset.
func boolVal(cfg map[string]any, key string) bool {
	v, _ := cfg[key].(bool)
	return v
}

// intVal returns cfg[key] as an int, accepting the float64 shape JSON
// decoding produces, or fallback when absent.
func intVal(cfg map[string]any, key string, fallback int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

// uniqueIdentifier returns prefix suffixed with a short random segment, for
// names that must be globally unique (bucket names and the like).
func uniqueIdentifier(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

// uniqueHyphenName is uniqueIdentifier's spelling for hyphenated cloud names.
func uniqueHyphenName(prefix string) string {
	return hyphenate(prefix) + "-" + uuid.NewString()[:8]
}

// timeSuffixedName appends a sortable timestamp, used where operators expect
// to recognize generations of a default-named resource.
func timeSuffixedName(prefix string) string {
	return hyphenate(prefix) + "-" + time.Now().UTC().Format("20060102150405")
}
