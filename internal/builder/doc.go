// Package builder turns the canvas graph (blocks and connections) into a
// typed, dependency-ordered resource list.
//
// Expansion is driven by a strategy table keyed by (provider, serviceType).
// Each entry maps one block to a canonical base resource plus whatever
// satellite resources a valid configuration needs, for example a bucket's
// public-access block or a function's execution role. Unknown pairs fall
// back to a pass-through resource with the raw config; the builder never
// fails a generation run over malformed input.
package builder
