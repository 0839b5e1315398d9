package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pipelinescope/core/internal/dag"
	"github.com/pipelinescope/core/internal/models"
	"github.com/pipelinescope/core/internal/parser"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check pipeline files for cycles without a running server",
		Long: `Reads each pipeline file (JSON, or YAML for .yaml/.yml files) and reports
the node count, the edge count and whether the graph is acyclic.
Edges naming unknown nodes are ignored for the cycle check.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cyclic := 0
			for _, path := range args {
				result, err := validateFile(path)
				if err != nil {
					return err
				}
				if !result.IsDAG {
					cyclic++
				}

				if asJSON {
					data, err := json.Marshal(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					continue
				}

				status := "DAG"
				if !result.IsDAG {
					status = "CYCLE"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (nodes=%d edges=%d)\n",
					path, status, result.NumNodes, result.NumEdges)
			}

			if cyclic > 0 {
				return fmt.Errorf("%d of %d pipelines contain a cycle", cyclic, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON lines")

	return cmd
}

func validateFile(path string) (models.PipelineResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.PipelineResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pipeline *models.Pipeline
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		pipeline, err = parser.ParsePipelineYAML(data)
	default:
		pipeline, err = parser.ParsePipeline(data)
	}
	if err != nil {
		return models.PipelineResult{}, fmt.Errorf("%s: %w", path, err)
	}

	result := dag.ValidatePipeline(pipeline)
	return models.PipelineResult{
		NumNodes: result.NodeCount,
		NumEdges: result.EdgeCount,
		IsDAG:    result.IsDAG,
	}, nil
}
