// Package dag decides whether a submitted pipeline graph is acyclic.
//
// Edges that name an identifier missing from the node list are ignored when
// checking for cycles. They are still counted in the reported edge total.
package dag

import "github.com/pipelinescope/core/internal/models"

type Result struct {
	NodeCount int
	EdgeCount int
	IsDAG     bool

	// DroppedEdges is the number of edges excluded from the cycle check
	// because an endpoint was not a known node.
	DroppedEdges int
}

// ValidatePipeline validates the nodes and edges of p.
func ValidatePipeline(p *models.Pipeline) Result {
	return Validate(p.NodeIDs(), p.Edges)
}

// Validate counts the distinct node identifiers and the raw edges, and runs
// Kahn's in-degree elimination over the edges whose endpoints are both known.
func Validate(nodeIDs []string, edges []models.Edge) Result {
	inDegree := make(map[string]int, len(nodeIDs))
	for _, id := range nodeIDs {
		inDegree[id] = 0
	}

	result := Result{
		NodeCount: len(inDegree),
		EdgeCount: len(edges),
	}

	adjacency := make(map[string][]string, len(inDegree))
	for _, e := range edges {
		_, knownSource := inDegree[e.Source]
		_, knownTarget := inDegree[e.Target]
		if !knownSource || !knownTarget {
			result.DroppedEdges++
			continue
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		inDegree[e.Target]++
	}

	queue := make([]string, 0, len(inDegree))
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	processed := 0
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		processed++

		for _, next := range adjacency[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	result.IsDAG = processed == len(inDegree)
	return result
}
