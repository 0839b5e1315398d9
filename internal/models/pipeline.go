// Package models defines the data structures exchanged with pipeline clients.
// It includes the request payload, the validation result and error bodies.
package models

type Pipeline struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Node struct {
	ID string `json:"id"`
}

// Edge references its endpoints by identifier only. Neither endpoint is
// required to be present in the pipeline's node list.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// PipelineResult is the response body of a pipeline parse request.
type PipelineResult struct {
	NumNodes int  `json:"num_nodes"`
	NumEdges int  `json:"num_edges"`
	IsDAG    bool `json:"is_dag"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NodeIDs returns the node identifiers in submission order, duplicates included.
func (p *Pipeline) NodeIDs() []string {
	ids := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}
