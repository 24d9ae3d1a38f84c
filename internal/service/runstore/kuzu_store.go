package runstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kuzudb/go-kuzu"
	"go.uber.org/zap"
)

// KuzuStore implements RunStore on the embedded Kuzu database
type KuzuStore struct {
	db     *kuzu.Database
	conn   *kuzu.Connection
	logger *zap.Logger
}

// NewKuzuStore opens (or creates) a Kuzu-backed run store. An empty path or
// ":memory:" opens an in-memory database.
func NewKuzuStore(databasePath string, logger *zap.Logger) (*KuzuStore, error) {
	var db *kuzu.Database
	var err error

	if databasePath == ":memory:" || databasePath == "" {
		db, err = kuzu.OpenInMemoryDatabase(kuzu.DefaultSystemConfig())
	} else {
		db, err = kuzu.OpenDatabase(databasePath, kuzu.DefaultSystemConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open Kuzu database: %w", err)
	}

	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open Kuzu connection: %w", err)
	}

	store := &KuzuStore{
		db:     db,
		conn:   conn,
		logger: logger,
	}

	if err := store.initializeSchema(); err != nil {
		store.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize Kuzu schema: %w", err)
	}
	return store, nil
}

func (s *KuzuStore) initializeSchema() error {
	schema := `CREATE NODE TABLE IF NOT EXISTS BenchRun(
		id STRING PRIMARY KEY,
		started_at STRING,
		codebase1 STRING,
		codebase2 STRING,
		total1 DOUBLE,
		total2 DOUBLE,
		scores1 STRING,
		scores2 STRING
	)`
	result, err := s.conn.Query(schema)
	if err != nil {
		return err
	}
	result.Close()
	return nil
}

// RecordRun saves a completed comparison run
func (s *KuzuStore) RecordRun(ctx context.Context, run *Run) error {
	scores1, err := json.Marshal(run.Scores1)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	scores2, err := json.Marshal(run.Scores2)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	query := `CREATE (r:BenchRun {
		id: $id,
		started_at: $started_at,
		codebase1: $codebase1,
		codebase2: $codebase2,
		total1: $total1,
		total2: $total2,
		scores1: $scores1,
		scores2: $scores2
	})`

	params := map[string]any{
		"id":         run.ID,
		"started_at": run.StartedAt.UTC().Format(time.RFC3339Nano),
		"codebase1":  run.Codebase1,
		"codebase2":  run.Codebase2,
		"total1":     run.Total1,
		"total2":     run.Total2,
		"scores1":    string(scores1),
		"scores2":    string(scores2),
	}

	prepared, err := s.conn.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer prepared.Close()

	result, err := s.conn.Execute(prepared, params)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	result.Close()

	s.logger.Info("Recorded benchmark run",
		zap.String("run_id", run.ID),
		zap.Float64("total1", run.Total1),
		zap.Float64("total2", run.Total2))
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (s *KuzuStore) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`MATCH (r:BenchRun)
		RETURN r.id, r.started_at, r.codebase1, r.codebase2, r.total1, r.total2, r.scores1, r.scores2
		ORDER BY r.started_at DESC LIMIT %d`, limit)

	result, err := s.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer result.Close()

	var runs []*Run
	for result.HasNext() {
		tuple, err := result.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read result row: %w", err)
		}
		record, err := tuple.GetAsMap()
		if err != nil {
			return nil, fmt.Errorf("failed to convert result row: %w", err)
		}
		runs = append(runs, recordToRun(record))
	}
	return runs, nil
}

// Close releases the connection and database
func (s *KuzuStore) Close(ctx context.Context) error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

func recordToRun(record map[string]any) *Run {
	run := &Run{
		ID:        asString(record["r.id"]),
		Codebase1: asString(record["r.codebase1"]),
		Codebase2: asString(record["r.codebase2"]),
		Total1:    asFloat(record["r.total1"]),
		Total2:    asFloat(record["r.total2"]),
	}
	if ts, err := time.Parse(time.RFC3339Nano, asString(record["r.started_at"])); err == nil {
		run.StartedAt = ts
	}
	_ = json.Unmarshal([]byte(asString(record["r.scores1"])), &run.Scores1)
	_ = json.Unmarshal([]byte(asString(record["r.scores2"])), &run.Scores2)
	return run
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

var _ RunStore = (*KuzuStore)(nil)
