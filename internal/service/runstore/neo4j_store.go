package runstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Neo4jStore implements RunStore on a remote Neo4j instance
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jStore connects to Neo4j and verifies connectivity
func NewNeo4jStore(uri, username, password string, logger *zap.Logger) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	return &Neo4jStore{
		driver: driver,
		logger: logger,
	}, nil
}

// RecordRun saves a completed comparison run
func (s *Neo4jStore) RecordRun(ctx context.Context, run *Run) error {
	scores1, err := json.Marshal(run.Scores1)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	scores2, err := json.Marshal(run.Scores2)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `CREATE (r:BenchRun {
			id: $id,
			started_at: $started_at,
			codebase1: $codebase1,
			codebase2: $codebase2,
			total1: $total1,
			total2: $total2,
			scores1: $scores1,
			scores2: $scores2
		})`, map[string]any{
			"id":         run.ID,
			"started_at": run.StartedAt.UTC().Format(time.RFC3339Nano),
			"codebase1":  run.Codebase1,
			"codebase2":  run.Codebase2,
			"total1":     run.Total1,
			"total2":     run.Total2,
			"scores1":    string(scores1),
			"scores2":    string(scores2),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Info("Recorded benchmark run",
		zap.String("run_id", run.ID),
		zap.Float64("total1", run.Total1),
		zap.Float64("total2", run.Total2))
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (s *Neo4jStore) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	records, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `MATCH (r:BenchRun)
			RETURN r.id AS id, r.started_at AS started_at,
			       r.codebase1 AS codebase1, r.codebase2 AS codebase2,
			       r.total1 AS total1, r.total2 AS total2,
			       r.scores1 AS scores1, r.scores2 AS scores2
			ORDER BY r.started_at DESC LIMIT $limit`,
			map[string]any{"limit": limit})
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	var runs []*Run
	for _, rec := range records.([]*neo4j.Record) {
		values := rec.AsMap()
		run := &Run{
			ID:        asString(values["id"]),
			Codebase1: asString(values["codebase1"]),
			Codebase2: asString(values["codebase2"]),
			Total1:    asFloat(values["total1"]),
			Total2:    asFloat(values["total2"]),
		}
		if ts, err := time.Parse(time.RFC3339Nano, asString(values["started_at"])); err == nil {
			run.StartedAt = ts
		}
		_ = json.Unmarshal([]byte(asString(values["scores1"])), &run.Scores1)
		_ = json.Unmarshal([]byte(asString(values["scores2"])), &run.Scores2)
		runs = append(runs, run)
	}
	return runs, nil
}

// Close shuts down the driver
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

var _ RunStore = (*Neo4jStore)(nil)
