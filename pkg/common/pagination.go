package common

import (
	"fmt"
	"net/http"
	"strconv"

	pkgerrors "social-backend/pkg/errors"
)

// FeedPageParams represents cursor pagination parameters
type FeedPageParams struct {
	Limit  int
	Cursor string
}

// ExtractFeedPageParams reads limit and cursor from the query string.
// A missing, non-numeric or non-positive limit falls back to defaultLimit.
// A limit above maxLimit is rejected rather than clamped.
func ExtractFeedPageParams(r *http.Request, defaultLimit, maxLimit int) (FeedPageParams, error) {
	params := FeedPageParams{
		Limit:  defaultLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			params.Limit = l
		}
	}

	if params.Limit > maxLimit {
		return params, pkgerrors.NewValidationError(fmt.Sprintf("Limit cannot exceed %d", maxLimit)).
			WithCode("LIMIT_TOO_LARGE")
	}

	return params, nil
}
