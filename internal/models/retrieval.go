package models

// MatchMetadata is the metadata snapshot attached to a vector index entry.
// City carries the region for entities without a city of their own.
type MatchMetadata struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type string   `json:"type"`
	City string   `json:"city"`
	Tags []string `json:"tags,omitempty"`
}

// SimilarityMatch is one scored result from the vector index.
// Produced fresh per query, never persisted.
type SimilarityMatch struct {
	ID       string        `json:"id"`
	Score    float64       `json:"score"`
	Metadata MatchMetadata `json:"metadata"`
}

// DescriptionBudget caps the target description carried by a RelationFact,
// in characters, not bytes.
const DescriptionBudget = 200

// RelationFact is one typed outgoing relationship discovered by graph
// expansion. The same target may appear once per source that links to it.
type RelationFact struct {
	Source     string `json:"source"`
	Relation   string `json:"relation"`
	TargetName string `json:"target_name"`
	TargetDesc string `json:"target_desc"`
}

// TruncateDescription trims a description to the fixed character budget.
// Cutting happens on rune boundaries so multi-byte text stays valid UTF-8.
// A missing description stays an empty string, never absent.
func TruncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) > DescriptionBudget {
		return string(runes[:DescriptionBudget])
	}
	return desc
}

// EvidenceBundle pairs the vector matches with the graph facts for one
// query. Transient: recomputed per query, no cross-query state.
type EvidenceBundle struct {
	Matches []SimilarityMatch `json:"matches"`
	Facts   []RelationFact    `json:"facts"`
}
