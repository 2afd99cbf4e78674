package config

import "fmt"

const (
	// DefaultCelebrityThreshold is the follower count at which an account is
	// served through query-time fetches instead of fan-out-on-write.
	DefaultCelebrityThreshold = 5000

	// DefaultFeedPageSize is used when the client does not send a usable limit.
	DefaultFeedPageSize = 20

	// MaxFeedPageSize is the largest page a client may request.
	MaxFeedPageSize = 100

	// DefaultFanoutConcurrency bounds in-flight collaborator calls per request.
	DefaultFanoutConcurrency = 10
)

// FeedConfig holds all configurable business rules for feed assembly
type FeedConfig struct {
	// Celebrity classification (inclusive)
	CelebrityThreshold int

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// Per-request fan-out width for follower counts and celebrity post fetches
	FanoutConcurrency int
}

// DefaultFeedConfig returns the default feed configuration
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		CelebrityThreshold: DefaultCelebrityThreshold,
		DefaultPageSize:    DefaultFeedPageSize,
		MaxPageSize:        MaxFeedPageSize,
		FanoutConcurrency:  DefaultFanoutConcurrency,
	}
}

// Validate ensures the configuration is consistent
func (c *FeedConfig) Validate() error {
	if c.CelebrityThreshold <= 0 {
		return fmt.Errorf("celebrity threshold must be positive, got %d", c.CelebrityThreshold)
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got %d", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("max page size (%d) must be >= default page size (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	if c.MaxPageSize > MaxFeedPageSize {
		return fmt.Errorf("max page size cannot exceed %d, got %d", MaxFeedPageSize, c.MaxPageSize)
	}
	if c.FanoutConcurrency <= 0 {
		return fmt.Errorf("fan-out concurrency must be positive, got %d", c.FanoutConcurrency)
	}
	return nil
}

// IsCelebrity reports whether an account with the given follower count is a
// celebrity under this configuration.
func (c *FeedConfig) IsCelebrity(followerCount int) bool {
	return followerCount >= c.CelebrityThreshold
}
