package rag

import (
	"fmt"
	"strings"

	"github.com/minhdn/travelgraph/internal/models"
)

const (
	// MaxMatchLines caps the match lines in a composed prompt. The composer
	// performs this truncation, not the retrievers.
	MaxMatchLines = 5

	// MaxFactLines caps the fact lines in a composed prompt.
	MaxFactLines = 10
)

// SystemPrompt carries the fixed reasoning chain for answer synthesis.
const SystemPrompt = "You are a helpful Vietnam travel assistant with access to semantic search and knowledge graph data. " +
	"Follow this chain of thought:\n" +
	"1. ANALYZE: What type of travel experience is the user seeking?\n" +
	"2. MATCH: Which locations from the search results best fit their needs?\n" +
	"3. CONNECT: What related places or activities enhance the experience?\n" +
	"4. RECOMMEND: Provide specific, actionable suggestions with reasoning.\n" +
	"Be specific, cite actual places, and explain why each recommendation fits their query."

// Compose assembles the user prompt handed to the language model: up to
// five match lines, up to ten fact lines, and the verbatim query.
func Compose(query string, matches []models.SimilarityMatch, facts []models.RelationFact) string {
	if len(matches) > MaxMatchLines {
		matches = matches[:MaxMatchLines]
	}
	if len(facts) > MaxFactLines {
		facts = facts[:MaxFactLines]
	}

	matchLines := make([]string, 0, len(matches))
	for _, m := range matches {
		city := m.Metadata.City
		if city == "" {
			city = "Vietnam"
		}
		matchLines = append(matchLines, fmt.Sprintf("- %s (%s) in %s [similarity: %.3f]",
			m.Metadata.Name, m.Metadata.Type, city, m.Score))
	}

	factLines := make([]string, 0, len(facts))
	for _, f := range facts {
		factLines = append(factLines, fmt.Sprintf("- %s (%s from %s): %s",
			f.TargetName, f.Relation, f.Source, f.TargetDesc))
	}

	return fmt.Sprintf(`User query: %s

Top semantic matches:
%s

Related places and connections:
%s

Based on the above context, provide a helpful response with specific recommendations.`,
		query, strings.Join(matchLines, "\n"), strings.Join(factLines, "\n"))
}
