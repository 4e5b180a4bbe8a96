package rag

import (
	"context"
	"fmt"
	"sync"

	"github.com/minhdn/travelgraph/internal/graph"
	"github.com/minhdn/travelgraph/internal/models"
	"github.com/tmc/langchaingo/llms"
)

// fakeEmbedder returns a deterministic vector per text and counts calls.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// Vector derived from the text length so distinct inputs are visible.
	return []float32{float32(len(text)), 1, 2}, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeIndex serves canned matches capped at topK.
type fakeIndex struct {
	matches []models.SimilarityMatch
	err     error

	mu         sync.Mutex
	lastTopK   int
	queryCalls int
}

func (f *fakeIndex) Query(ctx context.Context, embedding []float32, topK int) ([]models.SimilarityMatch, error) {
	f.mu.Lock()
	f.lastTopK = topK
	f.queryCalls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if len(f.matches) > topK {
		return f.matches[:topK], nil
	}
	return f.matches, nil
}

// fakeStore serves canned outgoing rows per id and records queried ids.
type fakeStore struct {
	rows map[string][]graph.OutgoingRow
	err  error

	mu         sync.Mutex
	queriedIDs []string
	lastLimit  int
}

func (f *fakeStore) Outgoing(ctx context.Context, id string, limit int) ([]graph.OutgoingRow, error) {
	f.mu.Lock()
	f.queriedIDs = append(f.queriedIDs, id)
	f.lastLimit = limit
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	rows := f.rows[id]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// fakeModel captures the prompts it receives.
type fakeModel struct {
	response string
	err      error

	mu         sync.Mutex
	lastSystem string
	lastUser   string
}

func (f *fakeModel) GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string, opts ...llms.CallOption) (string, error) {
	f.mu.Lock()
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	if f.response != "" {
		return f.response, nil
	}
	return "canned answer", nil
}

func strptr(s string) *string { return &s }

func makeMatches(n int, city string) []models.SimilarityMatch {
	matches := make([]models.SimilarityMatch, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("place_%d", i+1)
		matches = append(matches, models.SimilarityMatch{
			ID:    id,
			Score: 1 - float64(i)*0.05,
			Metadata: models.MatchMetadata{
				ID:   id,
				Name: fmt.Sprintf("Place %d", i+1),
				Type: "Attraction",
				City: city,
			},
		})
	}
	return matches
}
