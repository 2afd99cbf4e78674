package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrEmptyViewerID is returned when no caller identity is available
	ErrEmptyViewerID = errors.New("viewer ID cannot be empty")

	// ErrInvalidViewerID is returned when the caller identity is not a UUID
	ErrInvalidViewerID = errors.New("viewer ID must be a valid UUID")
)

// ViewerID identifies the authenticated caller a feed is assembled for
type ViewerID struct {
	value string
}

// NewViewerID validates and wraps a caller identity
func NewViewerID(id string) (ViewerID, error) {
	if id == "" {
		return ViewerID{}, ErrEmptyViewerID
	}
	if !isValidUUID(id) {
		return ViewerID{}, ErrInvalidViewerID
	}
	return ViewerID{value: id}, nil
}

// String returns the string representation of the ViewerID
func (id ViewerID) String() string {
	return id.value
}

// IsZero checks if the ViewerID is the zero value
func (id ViewerID) IsZero() bool {
	return id.value == ""
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
