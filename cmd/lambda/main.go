// Package main runs the pipeline API as an AWS Lambda function behind an API
// Gateway HTTP API. Requests are served by the same router as cmd/api.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/pipelinescope/core/internal/config"
	"github.com/pipelinescope/core/internal/logging"
	"github.com/pipelinescope/core/internal/metrics"
	"github.com/pipelinescope/core/internal/server"
	"go.uber.org/zap"
)

type proxyFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

func newHandler(cfg *config.Config, logger *zap.Logger) proxyFunc {
	router := server.NewRouter(cfg, logger, metrics.NewRegistry()).Setup()
	adapter := chiadapter.NewV2(router)

	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		resp, err := adapter.ProxyWithContextV2(ctx, req)
		if err != nil {
			logger.Error("lambda proxy failed",
				zap.String("request_id", req.RequestContext.RequestID),
				zap.String("path", req.RawPath),
				zap.Error(err),
			)
		}
		return resp, err
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	lambda.Start(newHandler(cfg, logger))
}
