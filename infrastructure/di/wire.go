//go:build wireinject
// +build wireinject

package di

import (
	"context"

	queryhandlers "social-backend/application/queries/handlers"
	"social-backend/application/services"
	"social-backend/infrastructure/config"
	"social-backend/interfaces/http/rest/handlers"
	"social-backend/interfaces/http/rest/middleware"
	"social-backend/pkg/auth"
	"social-backend/pkg/observability"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideFeedConfig,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCloudWatchClient,
	ProvideMetrics,
	ProvideTracer,
	ProvideRedisClient,
	ProvideNeo4jDriver,
	ProvideMaterializedFeedSource,
	ProvideFollowGraph,
	ProvidePostStore,
	services.NewCelebrityResolver,
	wire.Bind(new(queryhandlers.CelebrityPostFetcher), new(*services.CelebrityResolver)),
	wire.Bind(new(queryhandlers.CompositionRecorder), new(*observability.Metrics)),
	queryhandlers.NewGetFeedHandler,
	ProvideQueryBus,
	ProvideErrorHandler,
	ProvideJWTValidator,
	wire.Bind(new(middleware.TokenVerifier), new(*auth.JWTValidator)),
	ProvideRateLimiter,
	middleware.NewAuthenticator,
	handlers.NewFeedHandler,
	ProvideHealthHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
