package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      int                    `json:"code"`
	ErrorCode string                 `json:"errorCode,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

// ErrorHandler turns errors into JSON responses.
// Server-side failures are answered with a fixed public message; the cause
// is only ever written to the log.
type ErrorHandler struct {
	logger        *zap.Logger
	defaultStatus int
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger,
		defaultStatus: http.StatusInternalServerError,
	}
}

// Handle processes an error and sends an HTTP response.
// publicMessage replaces the message of any 5xx or unclassified error.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error, publicMessage string) {
	if err == nil {
		return
	}
	if publicMessage == "" {
		publicMessage = "An internal error occurred"
	}

	requestID := middleware.GetReqID(r.Context())

	var status int
	var response ErrorResponse

	if appErr := GetAppError(err); appErr != nil && !appErr.IsServerError() {
		status = appErr.HTTPStatus
		if status == 0 {
			status = h.defaultStatus
		}
		response = ErrorResponse{
			Error:     true,
			Type:      string(appErr.Type),
			Message:   appErr.Message,
			Code:      status,
			ErrorCode: appErr.Code,
			Details:   appErr.Details,
			RequestID: requestID,
		}
		h.logger.Warn(appErr.Message,
			zap.String("error_type", string(appErr.Type)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("request_id", requestID),
		)
	} else {
		status = h.defaultStatus
		errType := ErrorTypeInternal
		if appErr != nil {
			status = appErr.HTTPStatus
			errType = appErr.Type
		}
		response = ErrorResponse{
			Error:     true,
			Type:      string(errType),
			Message:   publicMessage,
			Code:      status,
			RequestID: requestID,
		}
		h.logger.Error(publicMessage,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
			zap.Int("status", status),
		)
	}

	h.sendJSON(w, status, response)
}

// HandleStatus sends an error response with a specific status code
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	response := ErrorResponse{
		Error:     true,
		Type:      string(statusToErrorType(status)),
		Message:   message,
		Code:      status,
		RequestID: middleware.GetReqID(r.Context()),
	}

	h.logger.Warn("HTTP error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("message", message),
	)

	h.sendJSON(w, status, response)
}

func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

func statusToErrorType(status int) ErrorType {
	switch status {
	case http.StatusBadRequest:
		return ErrorTypeValidation
	case http.StatusUnauthorized:
		return ErrorTypeUnauthorized
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	default:
		return ErrorTypeInternal
	}
}

// Middleware returns an HTTP middleware that turns panics into 500 responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)), "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
