package model

// BlockNode is one block on the visual canvas: a single infrastructure
// service the user dropped onto the diagram. It is an immutable input to a
// generation run; the builder never mutates the node or its config map.
type BlockNode struct {
	// ID is the canvas-assigned identifier, unique within one diagram.
	ID string `json:"id"`

	// ServiceType names the kind of service this block represents, for
	// example "s3", "lambda" or "sqs".
	ServiceType string `json:"serviceType"`

	// Provider is the cloud provider the block targets, for example "aws".
	Provider string `json:"provider"`

	// Name is the user-visible label. It is sanitized before it becomes a
	// resource identifier.
	Name string `json:"name"`

	// Config carries the per-service settings exactly as the canvas
	// serialized them (JSON-shaped values).
	Config map[string]any `json:"config"`
}

// Edge is a directed connection between two blocks on the canvas. The
// builder consumes it as a dependency hint: the target ends up depending on
// the source.
type Edge struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// Graph bundles the canvas state handed to a generation run.
type Graph struct {
	Nodes    []BlockNode `json:"nodes"`
	Edges    []Edge      `json:"edges"`
	Provider string      `json:"provider"`
}
