package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	domainconfig "social-backend/domain/config"
)

// Store backends selectable at startup
const (
	StoreDynamoDB = "dynamodb"
	StoreRedis    = "redis"
	StoreNeo4j    = "neo4j"
)

// DevelopmentJWTSecret is only accepted outside production
const DevelopmentJWTSecret = "development-secret-change-in-production"

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	DynamoDBTable    string
	DynamoDBEndpoint string // local testing only

	// Collaborator backends
	FeedStore        string
	FollowGraphStore string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	Neo4jURI         string
	Neo4jUser        string
	Neo4jPassword    string

	// Feed rules
	Feed domainconfig.FeedConfig

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Logging
	LogLevel string

	// Authentication
	JWTSigningMethod string
	JWTSecret        string
	JWTPublicKey     string
	JWTIssuer        string
	JWTAudience      []string

	// Feature flags
	EnableMetrics      bool
	EnableTracing      bool
	EnableCORS         bool
	MetricsNamespace   string
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:    getEnv("SERVER_ADDRESS", ":8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable:    getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "social")),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),

		FeedStore:        strings.ToLower(getEnv("FEED_STORE", StoreDynamoDB)),
		FollowGraphStore: strings.ToLower(getEnv("FOLLOW_GRAPH_STORE", StoreDynamoDB)),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		Neo4jURI:         getEnv("NEO4J_URI", "neo4j://localhost:7687"),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", ""),

		Feed: domainconfig.FeedConfig{
			CelebrityThreshold: getEnvInt("CELEBRITY_THRESHOLD", domainconfig.DefaultCelebrityThreshold),
			DefaultPageSize:    getEnvInt("FEED_DEFAULT_LIMIT", domainconfig.DefaultFeedPageSize),
			MaxPageSize:        getEnvInt("FEED_MAX_LIMIT", domainconfig.MaxFeedPageSize),
			FanoutConcurrency:  getEnvInt("FEED_FANOUT_CONCURRENCY", domainconfig.DefaultFanoutConcurrency),
		},

		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSigningMethod: getEnv("JWT_SIGNING_METHOD", "HS256"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTPublicKey:     getEnv("JWT_PUBLIC_KEY", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", ""),
		JWTAudience:      getEnvList("JWT_AUDIENCE"),

		EnableMetrics:      getEnvBool("ENABLE_METRICS", false),
		EnableTracing:      getEnvBool("ENABLE_TRACING", false),
		EnableCORS:         getEnvBool("ENABLE_CORS", true),
		MetricsNamespace:   getEnv("METRICS_NAMESPACE", "SocialFeed"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 200),
	}

	// A Lambda runtime always sets the function name
	if cfg.LambdaFunctionName != "" {
		cfg.IsLambda = true
	}

	if cfg.JWTSecret == "" && cfg.JWTSigningMethod == "HS256" && !cfg.IsProduction() {
		cfg.JWTSecret = DevelopmentJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := c.Feed.Validate(); err != nil {
		return fmt.Errorf("invalid feed configuration: %w", err)
	}

	switch c.FeedStore {
	case StoreDynamoDB, StoreRedis:
	default:
		return fmt.Errorf("FEED_STORE must be %q or %q, got %q", StoreDynamoDB, StoreRedis, c.FeedStore)
	}

	switch c.FollowGraphStore {
	case StoreDynamoDB, StoreNeo4j:
	default:
		return fmt.Errorf("FOLLOW_GRAPH_STORE must be %q or %q, got %q", StoreDynamoDB, StoreNeo4j, c.FollowGraphStore)
	}

	if c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}

	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}

	if c.IsProduction() {
		switch c.JWTSigningMethod {
		case "RS256":
			if c.JWTPublicKey == "" {
				return fmt.Errorf("JWT_PUBLIC_KEY is required in production")
			}
		default:
			if c.JWTSecret == "" || c.JWTSecret == DevelopmentJWTSecret {
				return fmt.Errorf("JWT_SECRET is required in production")
			}
		}
	}

	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
