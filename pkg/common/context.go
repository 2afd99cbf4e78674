package common

import (
	"context"
	"time"
)

// ContextKey represents a context key type
type ContextKey string

// Context keys
const (
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyAuthVia   ContextKey = "auth_via"
	ContextKeyStartTime ContextKey = "start_time"
)

// WithUserID adds the authenticated user id to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// GetUserID extracts the authenticated user id from context.
// An empty id counts as absent.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok && userID != ""
}

// WithAuthSource records how the user id was established ("authorizer" or "bearer")
func WithAuthSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ContextKeyAuthVia, source)
}

// GetAuthSource returns how the user id was established
func GetAuthSource(ctx context.Context) string {
	source, _ := ctx.Value(ContextKeyAuthVia).(string)
	return source
}

// WithStartTime adds start time to context
func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyStartTime, startTime)
}

// GetElapsedTime calculates elapsed time from start time in context
func GetElapsedTime(ctx context.Context) time.Duration {
	if startTime, ok := ctx.Value(ContextKeyStartTime).(time.Time); ok {
		return time.Since(startTime)
	}
	return 0
}
