package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pipelinescope/core/internal/dag"
	"github.com/pipelinescope/core/internal/metrics"
	"github.com/pipelinescope/core/internal/models"
	"github.com/pipelinescope/core/internal/parser"
	"go.uber.org/zap"
)

// PipelineHandler serves pipeline validation requests.
type PipelineHandler struct {
	logger       *zap.Logger
	metrics      *metrics.Registry
	maxBodyBytes int64
}

func NewPipelineHandler(logger *zap.Logger, registry *metrics.Registry, maxBodyBytes int64) *PipelineHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineHandler{
		logger:       logger,
		metrics:      registry,
		maxBodyBytes: maxBodyBytes,
	}
}

// Parse decodes a pipeline, checks it for cycles and reports the node count,
// the raw edge count and whether the pipeline is a DAG.
func (h *PipelineHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()

	logger := h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.reject(w, logger, "too_large", http.StatusRequestEntityTooLarge, err)
			return
		}
		h.reject(w, logger, "read_error", http.StatusBadRequest, err)
		return
	}

	pipeline, err := parser.ParsePipeline(body)
	if err != nil {
		if errors.Is(err, parser.ErrInvalidShape) {
			h.reject(w, logger, "shape", http.StatusUnprocessableEntity, err)
			return
		}
		h.reject(w, logger, "malformed", http.StatusBadRequest, err)
		return
	}

	result := dag.ValidatePipeline(pipeline)
	h.metrics.RecordValidation(result.NodeCount, result.EdgeCount, result.DroppedEdges, result.IsDAG)

	logger.Info("pipeline validated",
		zap.Int("num_nodes", result.NodeCount),
		zap.Int("num_edges", result.EdgeCount),
		zap.Int("dropped_edges", result.DroppedEdges),
		zap.Bool("is_dag", result.IsDAG),
	)

	response := models.PipelineResult{
		NumNodes: result.NodeCount,
		NumEdges: result.EdgeCount,
		IsDAG:    result.IsDAG,
	}

	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(response); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *PipelineHandler) reject(w http.ResponseWriter, logger *zap.Logger, reason string, status int, err error) {
	h.metrics.RecordInvalidRequest(reason)
	logger.Warn("pipeline request rejected",
		zap.String("reason", reason),
		zap.Int("status", status),
		zap.Error(err),
	)
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: detail})
}
