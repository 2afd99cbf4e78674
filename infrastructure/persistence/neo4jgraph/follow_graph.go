package neo4jgraph

import (
	"context"

	"social-backend/application/ports"
	pkgerrors "social-backend/pkg/errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

const (
	followingQuery = `
		MATCH (u:User {id: $userId})-[r:FOLLOWS]->(f:User)
		RETURN f.id AS followingId
		ORDER BY r.created_at, f.id
	`

	followerCountQuery = `
		MATCH (u:User {id: $userId})<-[:FOLLOWS]-(f:User)
		RETURN count(f) AS followers
	`
)

// FollowGraph reads (:User)-[:FOLLOWS]->(:User) relationships from Neo4j
type FollowGraph struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewFollowGraph creates a new Neo4j backed follow graph
func NewFollowGraph(driver neo4j.DriverWithContext, logger *zap.Logger) *FollowGraph {
	return &FollowGraph{driver: driver, logger: logger}
}

var _ ports.FollowGraph = (*FollowGraph)(nil)

// GetFollowingList returns the ids the user follows, oldest follow first
func (g *FollowGraph) GetFollowingList(ctx context.Context, userID string) ([]string, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, followingQuery, map[string]any{"userId": userID})
		if err != nil {
			return nil, err
		}

		ids := make([]string, 0)
		for res.Next(ctx) {
			id, _, err := neo4j.GetRecordValue[string](res.Record(), "followingId")
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, pkgerrors.NewExternalError("neo4j", err).WithDetails(map[string]interface{}{"query": "following"})
	}

	return result.([]string), nil
}

// GetFollowerCount counts incoming FOLLOWS relationships
func (g *FollowGraph) GetFollowerCount(ctx context.Context, accountID string) (int, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, followerCountQuery, map[string]any{"userId": accountID})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		count, _, err := neo4j.GetRecordValue[int64](record, "followers")
		return count, err
	})
	if err != nil {
		return 0, pkgerrors.NewExternalError("neo4j", err).WithDetails(map[string]interface{}{"query": "follower_count"})
	}

	return int(result.(int64)), nil
}
