package middleware

import (
	"errors"
	"net/http"
	"strings"

	"social-backend/pkg/auth"
	"social-backend/pkg/common"
	pkgerrors "social-backend/pkg/errors"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"go.uber.org/zap"
)

// TokenVerifier checks a bearer token and returns its subject
type TokenVerifier interface {
	UserID(token string) (string, error)
}

// Authenticator resolves the caller's identity and applies per-user rate limits.
//
// Identity comes from, in order: a bearer token in the Authorization header,
// which must verify when present, and the API Gateway JWT authorizer claims
// attached by the Lambda proxy.
type Authenticator struct {
	verifier TokenVerifier
	limiter  *auth.UserRateLimiter
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewAuthenticator creates the authentication middleware. A nil verifier
// rejects every bearer token; a nil limiter disables rate limiting.
func NewAuthenticator(
	verifier TokenVerifier,
	limiter *auth.UserRateLimiter,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		limiter:  limiter,
		errors:   errorHandler,
		logger:   logger,
	}
}

// Middleware returns the chi compatible middleware
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var userID, source string
		if token := extractBearerToken(r); token != "" {
			if a.verifier == nil {
				a.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("Invalid authorization token"), "")
				return
			}
			id, err := a.verifier.UserID(token)
			if err != nil {
				a.logger.Warn("Bearer token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				a.errors.Handle(w, r, pkgerrors.NewUnauthorizedError(tokenErrorMessage(err)).WithCause(err), "")
				return
			}
			userID, source = id, "bearer"
		} else if id := authorizerSubject(r); id != "" {
			userID, source = id, "authorizer"
		}

		if userID == "" {
			a.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("Missing authorization"), "")
			return
		}

		if a.limiter != nil {
			allowed, err := a.limiter.Allow(ctx, userID)
			if err != nil {
				a.logger.Error("Rate limiter error", zap.Error(err))
			} else if !allowed {
				rateErr := pkgerrors.NewRateLimitError(a.limiter.Limit(), "minute").
					WithDetails(map[string]interface{}{"limit": a.limiter.Limit(), "window": "minute"})
				a.errors.Handle(w, r, rateErr, "")
				return
			}
		}

		ctx = common.WithUserID(ctx, userID)
		ctx = common.WithAuthSource(ctx, source)

		a.logger.Debug("Request authenticated",
			zap.String("user_id", userID),
			zap.String("via", source),
			zap.String("path", r.URL.Path),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken returns the token of an "Authorization: Bearer" header
func extractBearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return header
}

// authorizerSubject reads the "sub" claim placed on the request by an
// API Gateway HTTP API JWT authorizer
func authorizerSubject(r *http.Request) string {
	reqCtx, ok := core.GetAPIGatewayV2ContextFromContext(r.Context())
	if !ok || reqCtx.Authorizer == nil || reqCtx.Authorizer.JWT == nil {
		return ""
	}
	return reqCtx.Authorizer.JWT.Claims["sub"]
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Authorization token has expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "Invalid authorization token signature"
	default:
		return "Invalid authorization token"
	}
}
