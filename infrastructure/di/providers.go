package di

import (
	"context"
	"fmt"

	"social-backend/application/ports"
	"social-backend/application/queries"
	querybus "social-backend/application/queries/bus"
	queryhandlers "social-backend/application/queries/handlers"
	domainconfig "social-backend/domain/config"
	"social-backend/infrastructure/config"
	"social-backend/infrastructure/persistence/dynamodb"
	"social-backend/infrastructure/persistence/neo4jgraph"
	"social-backend/infrastructure/persistence/redisfeed"
	"social-backend/interfaces/http/rest"
	"social-backend/interfaces/http/rest/handlers"
	"social-backend/interfaces/http/rest/middleware"
	"social-backend/pkg/auth"
	pkgerrors "social-backend/pkg/errors"
	"social-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = level
	}

	// Lambda log lines carry the function name
	if cfg.IsLambda {
		zapCfg.InitialFields = map[string]interface{}{"function": cfg.LambdaFunctionName}
	}

	return zapCfg.Build()
}

// ProvideFeedConfig exposes the feed rules loaded from the environment
func ProvideFeedConfig(cfg *config.Config) *domainconfig.FeedConfig {
	feedCfg := cfg.Feed
	return &feedCfg
}

// ProvideAWSConfig creates AWS configuration. With tracing enabled every
// SDK call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the metrics buffer; it is inert unless ENABLE_METRICS is set
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewNoopMetrics()
	}
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("feed", cfg.EnableTracing)
}

// ProvideRedisClient connects to Redis when it backs the materialized feed.
// It returns a nil client otherwise.
func ProvideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	if cfg.FeedStore != config.StoreRedis {
		return nil, func() {}, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideNeo4jDriver opens a Neo4j driver when it backs the follow graph.
// It returns a nil driver otherwise.
func ProvideNeo4jDriver(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, func(), error) {
	if cfg.FollowGraphStore != config.StoreNeo4j {
		return nil, func() {}, nil
	}

	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	cleanup := func() {
		_ = driver.Close(context.Background())
	}
	return driver, cleanup, nil
}

// ProvideMaterializedFeedSource selects the materialized feed backend
func ProvideMaterializedFeedSource(
	cfg *config.Config,
	ddb *awsdynamodb.Client,
	redisClient *goredis.Client,
	logger *zap.Logger,
) ports.MaterializedFeedSource {
	if cfg.FeedStore == config.StoreRedis {
		return redisfeed.NewTimelineRepository(redisClient, logger.Named("timeline"))
	}
	return dynamodb.NewFeedRepository(ddb, cfg.DynamoDBTable, logger.Named("feed_repository"))
}

// ProvideFollowGraph selects the follow graph backend
func ProvideFollowGraph(
	cfg *config.Config,
	ddb *awsdynamodb.Client,
	driver neo4j.DriverWithContext,
	logger *zap.Logger,
) ports.FollowGraph {
	if cfg.FollowGraphStore == config.StoreNeo4j {
		return neo4jgraph.NewFollowGraph(driver, logger.Named("follow_graph"))
	}
	return dynamodb.NewFollowRepository(ddb, cfg.DynamoDBTable, logger.Named("follow_repository"))
}

// ProvidePostStore creates the post store
func ProvidePostStore(ddb *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PostStore {
	return dynamodb.NewPostRepository(ddb, cfg.DynamoDBTable, logger.Named("post_repository"))
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	getFeedHandler *queryhandlers.GetFeedHandler,
	metrics *observability.Metrics,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.NewMetricsMiddleware(metrics))

	if err := queryBus.Register(queries.GetFeedQuery{}, querybus.Typed(getFeedHandler.Handle)); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger)
}

// ProvideJWTValidator creates the bearer token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: cfg.JWTSigningMethod,
		SecretKey:     cfg.JWTSecret,
		PublicKey:     cfg.JWTPublicKey,
		Issuer:        cfg.JWTIssuer,
		Audience:      cfg.JWTAudience,
	})
}

// ProvideRateLimiter creates the per-user rate limiter
func ProvideRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	return auth.NewUserRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideHealthHandler creates the probe handler with a readiness check per live backend
func ProvideHealthHandler(
	cfg *config.Config,
	ddb *awsdynamodb.Client,
	redisClient *goredis.Client,
	driver neo4j.DriverWithContext,
	logger *zap.Logger,
) *handlers.HealthHandler {
	checks := map[string]handlers.ReadinessCheck{
		"dynamodb": func(ctx context.Context) error {
			_, err := ddb.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{
				TableName: aws.String(cfg.DynamoDBTable),
			})
			return err
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	if driver != nil {
		checks["neo4j"] = driver.VerifyConnectivity
	}
	return handlers.NewHealthHandler(checks, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	feedHandler *handlers.FeedHandler,
	healthHandler *handlers.HealthHandler,
	authenticator *middleware.Authenticator,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	errorHandler *pkgerrors.ErrorHandler,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(feedHandler, healthHandler, authenticator, metrics, tracer, errorHandler, cfg.EnableCORS, logger)
}
