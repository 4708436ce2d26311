package model

import (
	"encoding/json"
	"fmt"
)

// DecodeGraph parses the canvas JSON document the UI exports. A missing
// provider falls back to "aws"; nodes and edges may be empty, which is a
// valid (if useless) canvas.
func DecodeGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decoding canvas graph: %w", err)
	}
	if g.Provider == "" {
		g.Provider = "aws"
	}
	return g, nil
}
