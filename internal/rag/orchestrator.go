package rag

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minhdn/travelgraph/internal/graph"
	"github.com/minhdn/travelgraph/internal/metrics"
	"github.com/minhdn/travelgraph/internal/models"
	"github.com/tmc/langchaingo/llms"
)

const (
	// DefaultTopK is the vector search breadth per query.
	DefaultTopK = 5

	// TopExpand caps how many leading matches feed graph expansion,
	// regardless of the topK requested from the retriever.
	TopExpand = 3
)

// Mode selects how a query turn executes. Both modes run the same steps in
// the same order; graph expansion always depends on vector-search output.
type Mode int

const (
	// ModeSequential runs every step inline.
	ModeSequential Mode = iota

	// ModeConcurrent offloads the blocking vector search to a goroutine so
	// the session loop stays responsive to cancellation. It does not
	// parallelize independent work; there is none between these steps.
	ModeConcurrent
)

// Turn is the full outcome of one chat query.
type Turn struct {
	Summary string
	Bundle  models.EvidenceBundle
	Answer  Answer
}

// Orchestrator owns the retrieval pipeline for one chat session and runs
// one query at a time: no turn overlaps another.
type Orchestrator struct {
	cache     *EmbeddingCache
	retriever *VectorRetriever
	expander  *GraphExpander
	synth     *Synthesizer
	collector *metrics.Collector
	logger    *slog.Logger
	mode      Mode
}

// NewOrchestrator wires the pipeline components. The embedding cache is
// constructed here and lives exactly as long as the orchestrator.
func NewOrchestrator(
	embedder TextEmbedder,
	index VectorIndex,
	store GraphStore,
	model CompletionModel,
	collector *metrics.Collector,
	logger *slog.Logger,
	mode Mode,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}

	cache := NewEmbeddingCache(timedEmbedder{embedder, collector})

	// The model is optional: the one-shot search command retrieves without
	// synthesizing.
	var synth *Synthesizer
	if model != nil {
		synth = NewSynthesizer(timedModel{model, collector}, logger)
	}

	return &Orchestrator{
		cache:     cache,
		retriever: NewVectorRetriever(cache, timedIndex{index, collector}, logger),
		expander:  NewGraphExpander(timedStore{store, collector}, logger),
		synth:     synth,
		collector: collector,
		logger:    logger,
		mode:      mode,
	}
}

// CacheSize reports the embedding cache size for the end-of-turn diagnostic.
func (o *Orchestrator) CacheSize() int {
	return o.cache.Size()
}

// Metrics exposes the session's timing collector.
func (o *Orchestrator) Metrics() *metrics.Collector {
	return o.collector
}

// Expander exposes graph expansion for the one-shot search command.
func (o *Orchestrator) Expander() *GraphExpander {
	return o.expander
}

// Search exposes plain vector retrieval for the one-shot search command.
func (o *Orchestrator) Search(ctx context.Context, query string, topK int) ([]models.SimilarityMatch, error) {
	return o.retriever.Search(ctx, query, topK)
}

// RetrieveContext gathers the evidence bundle for a query: vector matches,
// then graph facts for the top-3 match ids, then the evidence summary.
// Retrieval errors propagate; the caller keeps the session loop alive.
func (o *Orchestrator) RetrieveContext(ctx context.Context, query string) (models.EvidenceBundle, string, error) {
	matches, err := o.searchMatches(ctx, query)
	if err != nil {
		return models.EvidenceBundle{}, "", fmt.Errorf("vector search: %w", err)
	}

	facts := []models.RelationFact{}
	if len(matches) > 0 {
		top := matches
		if len(top) > TopExpand {
			top = top[:TopExpand]
		}
		ids := make([]string, 0, len(top))
		for _, m := range top {
			ids = append(ids, m.ID)
		}

		facts, err = o.expander.Expand(ctx, ids, DefaultFactsPerID)
		if err != nil {
			return models.EvidenceBundle{}, "", fmt.Errorf("graph expansion: %w", err)
		}
	}

	summary := Summarize(matches, facts)
	o.logger.Info("retrieval summary", "summary", summary)

	return models.EvidenceBundle{Matches: matches, Facts: facts}, summary, nil
}

// Respond composes the prompt for an already-retrieved evidence bundle and
// synthesizes the answer. Split from retrieval so the session loop can
// report progress between the two stages.
func (o *Orchestrator) Respond(ctx context.Context, query string, bundle models.EvidenceBundle) (Answer, error) {
	if o.synth == nil {
		return Answer{}, fmt.Errorf("LLM model not configured")
	}

	prompt := Compose(query, bundle.Matches, bundle.Facts)
	return o.synth.Synthesize(ctx, prompt), nil
}

// Chat runs one full query turn: retrieve, compose, synthesize.
func (o *Orchestrator) Chat(ctx context.Context, query string) (*Turn, error) {
	if o.synth == nil {
		return nil, fmt.Errorf("LLM model not configured")
	}

	bundle, summary, err := o.RetrieveContext(ctx, query)
	if err != nil {
		return nil, err
	}

	answer, err := o.Respond(ctx, query, bundle)
	if err != nil {
		return nil, err
	}

	return &Turn{Summary: summary, Bundle: bundle, Answer: answer}, nil
}

// searchMatches runs the vector search in the configured mode. Concurrent
// mode schedules the same blocking call on a goroutine and waits on either
// the result or context cancellation.
func (o *Orchestrator) searchMatches(ctx context.Context, query string) ([]models.SimilarityMatch, error) {
	if o.mode == ModeSequential {
		return o.retriever.Search(ctx, query, DefaultTopK)
	}

	type searchResult struct {
		matches []models.SimilarityMatch
		err     error
	}

	ch := make(chan searchResult, 1)
	go func() {
		matches, err := o.retriever.Search(ctx, query, DefaultTopK)
		ch <- searchResult{matches, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.matches, res.err
	}
}

// timedEmbedder, timedIndex, timedStore, and timedModel record operation
// timings without the components knowing about the collector.

type timedEmbedder struct {
	inner TextEmbedder
	c     *metrics.Collector
}

func (t timedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := t.inner.Embed(ctx, text)
	t.c.RecordTiming(metrics.OpEmbedding, time.Since(start))
	return vec, err
}

type timedIndex struct {
	inner VectorIndex
	c     *metrics.Collector
}

func (t timedIndex) Query(ctx context.Context, embedding []float32, topK int) ([]models.SimilarityMatch, error) {
	start := time.Now()
	matches, err := t.inner.Query(ctx, embedding, topK)
	t.c.RecordTiming(metrics.OpVectorQuery, time.Since(start))
	return matches, err
}

type timedStore struct {
	inner GraphStore
	c     *metrics.Collector
}

func (t timedStore) Outgoing(ctx context.Context, id string, limit int) ([]graph.OutgoingRow, error) {
	start := time.Now()
	rows, err := t.inner.Outgoing(ctx, id, limit)
	t.c.RecordTiming(metrics.OpGraphQuery, time.Since(start))
	return rows, err
}

type timedModel struct {
	inner CompletionModel
	c     *metrics.Collector
}

func (t timedModel) GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string, opts ...llms.CallOption) (string, error) {
	start := time.Now()
	text, err := t.inner.GenerateWithSystem(ctx, systemPrompt, userPrompt, opts...)
	t.c.RecordTiming(metrics.OpLLMGenerate, time.Since(start))
	return text, err
}
