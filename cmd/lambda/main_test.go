package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pipelinescope/core/internal/config"
	"github.com/pipelinescope/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func apiRequest(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		Version:  "2.0",
		RouteKey: "$default",
		RawPath:  path,
		Headers: map[string]string{
			"content-type": "application/json",
		},
		Body: body,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID:  "test-request",
			DomainName: "pipelines.execute-api.us-east-1.amazonaws.com",
			Stage:      "$default",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   path,
			},
		},
	}
}

func TestLambdaHandler(t *testing.T) {
	handler := newHandler(config.Default(), zap.NewNop())

	t.Run("validates a pipeline", func(t *testing.T) {
		body := `{"nodes": [{"id": "1"}], "edges": [{"source": "1", "target": "1"}]}`

		resp, err := handler(context.Background(), apiRequest(http.MethodPost, "/pipelines/parse", body))

		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.PipelineResult
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &result))
		assert.Equal(t, models.PipelineResult{NumNodes: 1, NumEdges: 1, IsDAG: false}, result)
	})

	t.Run("reports invalid shape", func(t *testing.T) {
		resp, err := handler(context.Background(), apiRequest(http.MethodPost, "/pipelines/parse", `{"edges": []}`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("serves health", func(t *testing.T) {
		resp, err := handler(context.Background(), apiRequest(http.MethodGet, "/health", ""))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Body, `"status":"healthy"`)
	})
}
