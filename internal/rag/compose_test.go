package rag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/minhdn/travelgraph/internal/models"
	"github.com/stretchr/testify/assert"
)

func countLinesWithPrefix(s, prefix string) int {
	count := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}
	return count
}

func makeFacts(n int) []models.RelationFact {
	facts := make([]models.RelationFact, 0, n)
	for i := 0; i < n; i++ {
		facts = append(facts, models.RelationFact{
			Source:     "place_1",
			Relation:   "NEAR",
			TargetName: fmt.Sprintf("Target %d", i+1),
			TargetDesc: "a nearby sight",
		})
	}
	return facts
}

func TestComposeTruncatesMatchesAndFacts(t *testing.T) {
	prompt := Compose("everything", makeMatches(20, "Hanoi"), makeFacts(50))

	assert.Equal(t, MaxMatchLines+MaxFactLines, countLinesWithPrefix(prompt, "- "))
	assert.Contains(t, prompt, "Place 5")
	assert.NotContains(t, prompt, "Place 6")
	assert.Contains(t, prompt, "Target 10")
	assert.NotContains(t, prompt, "Target 11")
}

func TestComposeMatchLineFormat(t *testing.T) {
	matches := []models.SimilarityMatch{{
		ID:    "dragon_bridge",
		Score: 0.87654,
		Metadata: models.MatchMetadata{
			Name: "Dragon Bridge",
			Type: "Attraction",
			City: "Da Nang",
		},
	}}

	prompt := Compose("bridges", matches, nil)

	assert.Contains(t, prompt, "- Dragon Bridge (Attraction) in Da Nang [similarity: 0.877]")
}

func TestComposeFactLineFormat(t *testing.T) {
	facts := []models.RelationFact{{
		Source:     "danang",
		Relation:   "NEAR",
		TargetName: "Marble Mountains",
		TargetDesc: "Cluster of marble hills",
	}}

	prompt := Compose("mountains", nil, facts)

	assert.Contains(t, prompt, "- Marble Mountains (NEAR from danang): Cluster of marble hills")
}

func TestComposeCarriesVerbatimQuery(t *testing.T) {
	query := "  Where CAN I  eat pho? "
	prompt := Compose(query, nil, nil)

	assert.Contains(t, prompt, "User query: "+query)
}

func TestComposeCityFallback(t *testing.T) {
	matches := []models.SimilarityMatch{{
		ID:    "p",
		Score: 0.5,
		Metadata: models.MatchMetadata{
			Name: "Somewhere",
			Type: "Activity",
		},
	}}

	prompt := Compose("q", matches, nil)

	assert.Contains(t, prompt, "in Vietnam [similarity: 0.500]")
}

func TestSystemPromptReasoningChain(t *testing.T) {
	for _, step := range []string{"ANALYZE", "MATCH", "CONNECT", "RECOMMEND"} {
		assert.Contains(t, SystemPrompt, step)
	}
}
