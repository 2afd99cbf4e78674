package di

import (
	querybus "social-backend/application/queries/bus"
	"social-backend/infrastructure/config"
	"social-backend/interfaces/http/rest"
	"social-backend/pkg/auth"
	"social-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	QueryBus    *querybus.QueryBus
	Metrics     *observability.Metrics
	RateLimiter *auth.UserRateLimiter
	Router      *rest.Router
}
