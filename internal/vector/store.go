// Package vector provides the Postgres/pgvector similarity index over
// travel entity embeddings.
package vector

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/minhdn/travelgraph/internal/models"
	"github.com/pgvector/pgvector-go"
)

// Store wraps a Postgres connection with the pgvector extension enabled.
type Store struct {
	db        *sql.DB
	dimension int
	logger    *slog.Logger
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string, dimension int, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info("postgres connection established")
	return &Store{db: db, dimension: dimension, logger: log}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.logger.Info("closing postgres connection")
	return s.db.Close()
}

// InitSchema creates the pgvector extension, the places table, and the
// cosine HNSW index.
func (s *Store) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS places (
			id        text PRIMARY KEY,
			name      text NOT NULL,
			type      text NOT NULL,
			city      text NOT NULL DEFAULT '',
			tags      text[] NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL
		)`, s.dimension),
		`CREATE INDEX IF NOT EXISTS idx_places_embedding
			ON places USING hnsw (embedding vector_cosine_ops)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Query runs a nearest-neighbor search and returns up to topK matches with
// metadata, ordered by descending cosine similarity.
func (s *Store) Query(ctx context.Context, embedding []float32, topK int) ([]models.SimilarityMatch, error) {
	if len(embedding) != s.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(embedding), s.dimension)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, city, tags, 1 - (embedding <=> $1) AS score
		FROM places
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	defer rows.Close()

	var matches []models.SimilarityMatch
	for rows.Next() {
		var m models.SimilarityMatch
		if err := rows.Scan(
			&m.ID,
			&m.Metadata.Name,
			&m.Metadata.Type,
			&m.Metadata.City,
			pq.Array(&m.Metadata.Tags),
			&m.Score,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Metadata.ID = m.ID
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return matches, nil
}

// Upsert writes one entity embedding with its metadata snapshot.
func (s *Store) Upsert(ctx context.Context, meta models.MatchMetadata, embedding []float32) error {
	if len(embedding) != s.dimension {
		return fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(embedding), s.dimension)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO places (id, name, type, city, tags, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			city = EXCLUDED.city,
			tags = EXCLUDED.tags,
			embedding = EXCLUDED.embedding
	`, meta.ID, meta.Name, meta.Type, meta.City, pq.Array(meta.Tags), pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("upsert place %s: %w", meta.ID, err)
	}
	return nil
}

// Stats describes the index for diagnostics.
type Stats struct {
	TotalVectors int
	Dimension    int
}

// DescribeStats reports vector count and configured dimension.
func (s *Store) DescribeStats(ctx context.Context) (Stats, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM places`).Scan(&count); err != nil {
		return Stats{}, fmt.Errorf("count places: %w", err)
	}
	return Stats{TotalVectors: count, Dimension: s.dimension}, nil
}
