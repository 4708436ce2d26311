package model

// OrderedConfig is a string-keyed map that remembers insertion order. The
// serializer renders attributes in exactly the order the builder set them,
// so plain Go maps (randomized iteration) are not usable here.
type OrderedConfig struct {
	keys   []string
	values map[string]any
}

// NewConfig returns an empty OrderedConfig.
func NewConfig() *OrderedConfig {
	return &OrderedConfig{values: make(map[string]any)}
}

// Set stores a value under key. Setting an existing key overwrites the value
// but keeps the key's original position.
func (c *OrderedConfig) Set(key string, value any) *OrderedConfig {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	return c
}

// Get returns the value stored under key, and whether it was present.
func (c *OrderedConfig) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (c *OrderedConfig) Keys() []string {
	return c.keys
}

// Len returns the number of stored keys.
func (c *OrderedConfig) Len() int {
	return len(c.keys)
}

// TerraformResource is one declarative resource (or data source) derived
// from a canvas block. One BlockNode may yield a base resource plus
// satellite resources that complete a valid configuration.
type TerraformResource struct {
	// Type is the provider resource type, e.g. "aws_s3_bucket".
	Type string

	// Name is the sanitized identifier, matching [a-z][a-z0-9_]*.
	Name string

	// DataSource marks the resource as a data block rather than a managed
	// resource (e.g. an inline-code archive).
	DataSource bool

	// Config holds the resource arguments in render order.
	Config *OrderedConfig

	// Dependencies lists qualified names of resources this one depends on.
	Dependencies []string
}

// QualifiedName returns the reference form of the resource,
// "type.name" for managed resources and "data.type.name" for data sources.
func (r *TerraformResource) QualifiedName() string {
	if r.DataSource {
		return "data." + r.Type + "." + r.Name
	}
	return r.Type + "." + r.Name
}

// AddDependency appends a qualified name to the dependency list, ignoring
// duplicates and self-references.
func (r *TerraformResource) AddDependency(qualified string) {
	if qualified == "" || qualified == r.QualifiedName() {
		return
	}
	for _, d := range r.Dependencies {
		if d == qualified {
			return
		}
	}
	r.Dependencies = append(r.Dependencies, qualified)
}
