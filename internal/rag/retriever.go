package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minhdn/travelgraph/internal/models"
)

// VectorIndex is the opaque nearest-neighbor store behind the retriever.
type VectorIndex interface {
	Query(ctx context.Context, embedding []float32, topK int) ([]models.SimilarityMatch, error)
}

// VectorRetriever converts a query into its embedding and runs a top-k
// similarity search. Store order is preserved; index errors propagate
// untouched so the caller decides the fallback.
type VectorRetriever struct {
	cache  *EmbeddingCache
	index  VectorIndex
	logger *slog.Logger
}

// NewVectorRetriever creates a retriever over cache and index.
func NewVectorRetriever(cache *EmbeddingCache, index VectorIndex, logger *slog.Logger) *VectorRetriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &VectorRetriever{cache: cache, index: index, logger: logger}
}

// Search returns up to topK scored matches for query.
func (r *VectorRetriever) Search(ctx context.Context, query string, topK int) ([]models.SimilarityMatch, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be >= 1, got %d", topK)
	}

	embedding, err := r.cache.Get(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.index.Query(ctx, embedding, topK)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("vector search complete", "query_len", len(query), "top_k", topK, "matches", len(matches))
	return matches, nil
}
