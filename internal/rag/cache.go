// Package rag implements the hybrid retrieval pipeline: vector search,
// graph expansion, evidence summarization, prompt composition, and answer
// synthesis.
package rag

import (
	"context"
	"sync"
)

// TextEmbedder turns text into a fixed-length vector.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingCache memoizes text-to-vector lookups for the lifetime of a chat
// session. Keys are the raw query text, exact match only: no whitespace or
// case normalization, no eviction. Constructed at session start and owned by
// the orchestrator, never a package-level singleton.
type EmbeddingCache struct {
	embedder TextEmbedder

	mu      sync.Mutex
	entries map[string][]float32
}

// NewEmbeddingCache creates an empty cache in front of embedder.
func NewEmbeddingCache(embedder TextEmbedder) *EmbeddingCache {
	return &EmbeddingCache{
		embedder: embedder,
		entries:  make(map[string][]float32),
	}
}

// Get returns the embedding for text, computing and storing it on first use.
// A hit never reaches the underlying embedder.
func (c *EmbeddingCache) Get(ctx context.Context, text string) ([]float32, error) {
	c.mu.Lock()
	if vec, ok := c.entries[text]; ok {
		c.mu.Unlock()
		return vec, nil
	}
	c.mu.Unlock()

	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[text] = vec
	c.mu.Unlock()
	return vec, nil
}

// Size reports the number of cached embeddings.
func (c *EmbeddingCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
