package model

// Variable is one input variable declaration of the generated artifact.
type Variable struct {
	Name        string
	Type        string // terraform type expression, e.g. "string"
	Description string
	Default     any // nil means no default (required variable)
	Sensitive   bool
}

// Output is one output declaration of the generated artifact. Value is a
// raw reference expression such as "aws_instance.web.public_ip".
type Output struct {
	Name        string
	Value       string
	Description string
	Sensitive   bool
}

// GeneratedArtifact is the complete result of one generation run: the typed
// resource set plus the text it serializes to. Resources keep the builder's
// insertion order; the serializer never re-sorts them.
type GeneratedArtifact struct {
	Provider  string
	Resources []*TerraformResource
	Variables []Variable
	Outputs   []Output

	// SerializedText is the rendered HCL, filled in by the serializer.
	SerializedText string
}

// ResourceCount returns the number of managed resource blocks (data sources
// excluded), matching what a rescan of the serialized text counts.
func (a *GeneratedArtifact) ResourceCount() int {
	n := 0
	for _, r := range a.Resources {
		if !r.DataSource {
			n++
		}
	}
	return n
}

// FindResource returns the first resource with the given qualified name.
func (a *GeneratedArtifact) FindResource(qualified string) (*TerraformResource, bool) {
	for _, r := range a.Resources {
		if r.QualifiedName() == qualified {
			return r, true
		}
	}
	return nil, false
}
