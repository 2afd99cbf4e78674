package main

import (
	"context"
	"log"
	"time"

	"social-backend/infrastructure/config"
	"social-backend/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"
)

var (
	// chiLambda wraps the Chi router for AWS Lambda integration
	chiLambda *chiadapter.ChiLambdaV2

	container *di.Container

	coldStart     = true
	coldStartTime time.Time
)

// init wires the container once per execution environment
func init() {
	coldStartTime = time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Cleanup is never run: the execution environment is discarded as a whole
	container, _, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	chiLambda = chiadapter.NewV2(container.Router.Setup())

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
		zap.String("feedStore", cfg.FeedStore),
		zap.String("followGraphStore", cfg.FollowGraphStore),
	)
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambda.ProxyWithContextV2(ctx, req)
	if err != nil {
		container.Logger.Error("Failed to proxy request",
			zap.Error(err),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("request_id", req.RequestContext.RequestID),
		)
		return resp, err
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		coldStart = false
	} else {
		resp.Headers["X-Cold-Start"] = "false"
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	container.Logger.Debug("Lambda response",
		zap.String("method", req.RequestContext.HTTP.Method),
		zap.String("path", req.RequestContext.HTTP.Path),
		zap.String("request_id", req.RequestContext.RequestID),
		zap.Int("status_code", resp.StatusCode),
	)

	return resp, nil
}

func main() {
	lambda.Start(Handler)
}
