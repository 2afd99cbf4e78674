package handlers

import (
	"fmt"
	"net/http"

	"social-backend/application/queries"
	querybus "social-backend/application/queries/bus"
	domainconfig "social-backend/domain/config"
	"social-backend/domain/core/valueobjects"
	"social-backend/pkg/common"
	pkgerrors "social-backend/pkg/errors"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const feedFailureMessage = "Failed to fetch feed"

// FeedHandler handles GET /feed
type FeedHandler struct {
	queryBus *querybus.QueryBus
	config   *domainconfig.FeedConfig
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(
	queryBus *querybus.QueryBus,
	config *domainconfig.FeedConfig,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *FeedHandler {
	if config == nil {
		config = domainconfig.DefaultFeedConfig()
	}
	return &FeedHandler{
		queryBus: queryBus,
		config:   config,
		errors:   errorHandler,
		logger:   logger,
	}
}

// GetFeed handles GET /feed?limit=&cursor=
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.GetUserID(r.Context())
	if !ok {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("Missing authorization"), "")
		return
	}

	if _, err := valueobjects.NewViewerID(viewerID); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("Invalid user ID format").WithCode("INVALID_USER_ID"), "")
		return
	}

	page, err := common.ExtractFeedPageParams(r, h.config.DefaultPageSize, h.config.MaxPageSize)
	if err != nil {
		h.errors.Handle(w, r, err, "")
		return
	}

	query := queries.GetFeedQuery{
		ViewerID: viewerID,
		Limit:    page.Limit,
		Cursor:   page.Cursor,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		if pkgerrors.IsValidation(err) {
			h.errors.Handle(w, r, err, "")
			return
		}
		h.logger.Error("Failed to assemble feed",
			zap.Error(err),
			zap.String("viewerID", viewerID),
			zap.Int("limit", page.Limit),
			zap.Bool("hasCursor", page.Cursor != ""),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
		h.errors.HandleStatus(w, r, http.StatusInternalServerError, feedFailureMessage)
		return
	}

	feed, ok := result.(*queries.GetFeedResult)
	if !ok {
		h.errors.Handle(w, r, fmt.Errorf("unexpected feed result type %T", result), feedFailureMessage)
		return
	}

	if err := common.RespondJSON(w, http.StatusOK, feed); err != nil {
		h.logger.Error("Failed to encode feed response", zap.Error(err))
	}
}
