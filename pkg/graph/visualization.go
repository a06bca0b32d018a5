package graph

// VisualizationNode is the display projection of an entity.
type VisualizationNode struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	Label string            `json:"label"`
	Data  VisualizationData `json:"data"`
}

// VisualizationData carries the secondary node payload for a renderer.
type VisualizationData struct {
	Description string         `json:"description,omitempty"`
	Confidence  float64        `json:"confidence"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// VisualizationEdge is the display projection of an edge.
type VisualizationEdge struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Type       string   `json:"type"`
	Label      string   `json:"label,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
}

// VisualizationMeta summarizes the exported graph.
type VisualizationMeta struct {
	Version   int `json:"version"`
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// Visualization is a pure projection of the graph for display clients
// (React Flow, D3, and similar). Building it has no side effects.
type Visualization struct {
	Nodes []VisualizationNode `json:"nodes"`
	Edges []VisualizationEdge `json:"edges"`
	Meta  VisualizationMeta   `json:"meta"`
}

// ToVisualization exports the current graph state as a node/edge/meta triple.
// The meta counts always equal the lengths of the node and edge lists.
func (g *ProcessGraph) ToVisualization() *Visualization {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]VisualizationNode, 0, len(g.entities))
	for id, entity := range g.entities {
		nodes = append(nodes, VisualizationNode{
			ID:    id.String(),
			Type:  string(entity.Kind),
			Label: entity.Name,
			Data: VisualizationData{
				Description: entity.Description,
				Confidence:  entity.ConfidenceScore,
				Attributes:  entity.Attributes,
			},
		})
	}

	edges := make([]VisualizationEdge, 0, len(g.edges))
	for id, edge := range g.edges {
		edges = append(edges, VisualizationEdge{
			ID:         id.String(),
			Source:     edge.SourceID.String(),
			Target:     edge.TargetID.String(),
			Type:       string(edge.Kind),
			Label:      edge.Label,
			Conditions: edge.Conditions,
		})
	}

	return &Visualization{
		Nodes: nodes,
		Edges: edges,
		Meta: VisualizationMeta{
			Version:   g.version,
			NodeCount: len(nodes),
			EdgeCount: len(edges),
		},
	}
}
