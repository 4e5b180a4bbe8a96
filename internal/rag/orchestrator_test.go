package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/minhdn/travelgraph/internal/graph"
	"github.com/minhdn/travelgraph/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(index *fakeIndex, store *fakeStore, model *fakeModel, mode Mode) *Orchestrator {
	var completion CompletionModel
	if model != nil {
		completion = model
	}
	return NewOrchestrator(&fakeEmbedder{}, index, store, completion, nil, nil, mode)
}

func TestChatBeachScenario(t *testing.T) {
	// Three Da Nang matches, two facts for the top match.
	index := &fakeIndex{matches: makeMatches(3, "Da Nang")}
	store := &fakeStore{rows: map[string][]graph.OutgoingRow{
		"place_1": {
			{ID: "marble", Name: "Marble Mountains", Description: strptr("Marble hills"), Relation: "NEAR"},
			{ID: "mykhe", Name: "My Khe Beach", Description: strptr("White sand beach"), Relation: "NEAR"},
		},
	}}
	model := &fakeModel{response: "Go to Da Nang."}
	orch := newTestOrchestrator(index, store, model, ModeSequential)

	turn, err := orch.Chat(context.Background(), "beautiful beaches")
	require.NoError(t, err)

	assert.Contains(t, turn.Summary, "3 places")
	assert.Contains(t, turn.Summary, "1 cities (Da Nang)")
	assert.Contains(t, turn.Summary, "2 related connections")

	assert.Equal(t, 3, countLinesWithPrefix(model.lastUser, "- Place"))
	assert.Equal(t, 2, countLinesWithPrefix(model.lastUser, "- M"))
	assert.Contains(t, model.lastUser, "User query: beautiful beaches")

	assert.Equal(t, "Go to Da Nang.", turn.Answer.Text)
	assert.False(t, turn.Answer.Degraded)
}

func TestChatVectorFailurePropagates(t *testing.T) {
	storeErr := errors.New("index unreachable")
	index := &fakeIndex{err: storeErr}
	store := &fakeStore{}
	model := &fakeModel{}
	orch := newTestOrchestrator(index, store, model, ModeSequential)

	_, err := orch.Chat(context.Background(), "beaches")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, store.queriedIDs, "graph expansion must not run after a vector failure")
	assert.Empty(t, model.lastUser, "synthesis must not run after a vector failure")
}

func TestChatSynthesisFailureDegrades(t *testing.T) {
	index := &fakeIndex{matches: makeMatches(2, "Hue")}
	store := &fakeStore{}
	model := &fakeModel{err: errors.New("completion timeout")}
	orch := newTestOrchestrator(index, store, model, ModeSequential)

	turn, err := orch.Chat(context.Background(), "temples")
	require.NoError(t, err, "synthesis failure must not fail the turn")

	assert.True(t, turn.Answer.Degraded)
	assert.Contains(t, turn.Answer.Text, "completion timeout")
}

func TestTopThreeRule(t *testing.T) {
	// topK=5 matches retrieved, but only the top three ids are expanded.
	index := &fakeIndex{matches: makeMatches(5, "Hanoi")}
	store := &fakeStore{}
	orch := newTestOrchestrator(index, store, &fakeModel{}, ModeSequential)

	_, err := orch.Chat(context.Background(), "old quarter")
	require.NoError(t, err)

	assert.Equal(t, 5, index.lastTopK)
	assert.Equal(t, []string{"place_1", "place_2", "place_3"}, store.queriedIDs)
	assert.Equal(t, DefaultFactsPerID, store.lastLimit)
}

func TestRetrieveContextSkipsExpansionWithoutMatches(t *testing.T) {
	index := &fakeIndex{}
	store := &fakeStore{}
	orch := newTestOrchestrator(index, store, nil, ModeSequential)

	bundle, summary, err := orch.RetrieveContext(context.Background(), "nothing here")
	require.NoError(t, err)

	assert.Empty(t, bundle.Matches)
	assert.Empty(t, bundle.Facts)
	assert.Empty(t, store.queriedIDs)
	assert.Equal(t, "Found 0 places", summary)
}

func TestConcurrentModeMatchesSequential(t *testing.T) {
	build := func(mode Mode) (*Orchestrator, *fakeModel) {
		index := &fakeIndex{matches: makeMatches(3, "Da Nang")}
		store := &fakeStore{rows: map[string][]graph.OutgoingRow{
			"place_1": {{ID: "m", Name: "Marble Mountains", Description: strptr("hills"), Relation: "NEAR"}},
		}}
		model := &fakeModel{response: "answer"}
		return newTestOrchestrator(index, store, model, mode), model
	}

	seq, seqModel := build(ModeSequential)
	con, conModel := build(ModeConcurrent)

	seqTurn, err := seq.Chat(context.Background(), "beaches")
	require.NoError(t, err)
	conTurn, err := con.Chat(context.Background(), "beaches")
	require.NoError(t, err)

	assert.Equal(t, seqTurn.Summary, conTurn.Summary)
	assert.Equal(t, seqModel.lastUser, conModel.lastUser)
}

// blockingIndex never answers before its context is cancelled.
type blockingIndex struct{}

func (blockingIndex) Query(ctx context.Context, embedding []float32, topK int) ([]models.SimilarityMatch, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestConcurrentModeHonorsCancellation(t *testing.T) {
	orch := NewOrchestrator(&fakeEmbedder{}, blockingIndex{}, &fakeStore{}, &fakeModel{}, nil, nil, ModeConcurrent)

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	_, err := orch.Chat(ctx, "temples")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheSizeDiagnostic(t *testing.T) {
	index := &fakeIndex{matches: makeMatches(1, "Hue")}
	orch := newTestOrchestrator(index, &fakeStore{}, &fakeModel{}, ModeSequential)
	ctx := context.Background()

	assert.Equal(t, 0, orch.CacheSize())

	_, err := orch.Chat(ctx, "temples")
	require.NoError(t, err)
	assert.Equal(t, 1, orch.CacheSize())

	// Repeat query hits the cache; distinct query grows it.
	_, err = orch.Chat(ctx, "temples")
	require.NoError(t, err)
	assert.Equal(t, 1, orch.CacheSize())

	_, err = orch.Chat(ctx, "pagodas")
	require.NoError(t, err)
	assert.Equal(t, 2, orch.CacheSize())
}

func TestChatWithoutModelFails(t *testing.T) {
	orch := newTestOrchestrator(&fakeIndex{}, &fakeStore{}, nil, ModeSequential)

	_, err := orch.Chat(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRespondComposesFromBundle(t *testing.T) {
	model := &fakeModel{response: "stay in Hue"}
	orch := newTestOrchestrator(&fakeIndex{}, &fakeStore{}, model, ModeSequential)

	bundle := models.EvidenceBundle{
		Matches: makeMatches(2, "Hue"),
		Facts: []models.RelationFact{
			{Source: "place_1", Relation: "NEAR", TargetName: "Perfume River", TargetDesc: "Scenic river"},
		},
	}

	answer, err := orch.Respond(context.Background(), "imperial city", bundle)
	require.NoError(t, err)

	assert.Equal(t, "stay in Hue", answer.Text)
	assert.Contains(t, model.lastUser, "User query: imperial city")
	assert.Contains(t, model.lastUser, "- Place 1 (Attraction) in Hue")
	assert.Contains(t, model.lastUser, "- Perfume River (NEAR from place_1): Scenic river")
}

func TestRespondWithoutModelFails(t *testing.T) {
	orch := newTestOrchestrator(&fakeIndex{}, &fakeStore{}, nil, ModeSequential)

	_, err := orch.Respond(context.Background(), "anything", models.EvidenceBundle{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestMetricsRecorded(t *testing.T) {
	index := &fakeIndex{matches: makeMatches(3, "Hue")}
	store := &fakeStore{}
	orch := newTestOrchestrator(index, store, &fakeModel{}, ModeSequential)

	_, err := orch.Chat(context.Background(), "temples")
	require.NoError(t, err)

	snaps := orch.Metrics().Snapshot()
	ops := make(map[string]int64, len(snaps))
	for _, s := range snaps {
		ops[s.Op] = s.Count
	}

	assert.Equal(t, int64(1), ops["embedding"])
	assert.Equal(t, int64(1), ops["vector_query"])
	assert.Equal(t, int64(3), ops["graph_query"], "one graph query per expanded id")
	assert.Equal(t, int64(1), ops["llm_generate"])
}
