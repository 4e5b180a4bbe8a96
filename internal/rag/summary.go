package rag

import (
	"fmt"
	"strings"

	"github.com/minhdn/travelgraph/internal/models"
)

// Summarize builds a one-line digest of the retrieved evidence: match count,
// distinct cities (up to three examples), distinct types, and fact count.
// Pure function, zero-safe on both inputs. Distinct values keep first-seen
// order so the digest is deterministic.
func Summarize(matches []models.SimilarityMatch, facts []models.RelationFact) string {
	var cities, types []string
	seenCity := map[string]bool{}
	seenType := map[string]bool{}

	for _, m := range matches {
		if city := m.Metadata.City; city != "" && !seenCity[city] {
			seenCity[city] = true
			cities = append(cities, city)
		}
		if typ := m.Metadata.Type; typ != "" && !seenType[typ] {
			seenType[typ] = true
			types = append(types, typ)
		}
	}

	summary := fmt.Sprintf("Found %d places", len(matches))
	if len(cities) > 0 {
		examples := cities
		if len(examples) > 3 {
			examples = examples[:3]
		}
		summary += fmt.Sprintf(" across %d cities (%s)", len(cities), strings.Join(examples, ", "))
	}
	if len(types) > 0 {
		summary += " including " + strings.Join(types, ", ")
	}
	if len(facts) > 0 {
		summary += fmt.Sprintf(" with %d related connections", len(facts))
	}

	return summary
}
