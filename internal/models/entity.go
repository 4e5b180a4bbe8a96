// Package models defines data structures for the travelgraph knowledge base.
package models

// EntityType is a node label in the travel knowledge graph.
// The set is closed: labels are interpolated into graph queries, so
// anything outside this enumeration is rejected before it reaches a query.
type EntityType string

const (
	EntityCity       EntityType = "City"
	EntityAttraction EntityType = "Attraction"
	EntityHotel      EntityType = "Hotel"
	EntityActivity   EntityType = "Activity"
	EntityRestaurant EntityType = "Restaurant"
)

// EntityTypes lists all valid node labels.
var EntityTypes = []EntityType{
	EntityCity,
	EntityAttraction,
	EntityHotel,
	EntityActivity,
	EntityRestaurant,
}

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RelationType is a typed directed edge in the travel knowledge graph.
// Closed set for the same reason as EntityType.
type RelationType string

const (
	RelationLocatedIn  RelationType = "LOCATED_IN"
	RelationNear       RelationType = "NEAR"
	RelationOffers     RelationType = "OFFERS"
	RelationPopularFor RelationType = "POPULAR_FOR"
	RelationRelatedTo  RelationType = "RELATED_TO"
)

// RelationTypes lists all valid relationship types.
var RelationTypes = []RelationType{
	RelationLocatedIn,
	RelationNear,
	RelationOffers,
	RelationPopularFor,
	RelationRelatedTo,
}

// Valid reports whether r is a known relation type.
func (r RelationType) Valid() bool {
	for _, known := range RelationTypes {
		if r == known {
			return true
		}
	}
	return false
}

// Entity is a place or activity in the knowledge base. Identity is the ID;
// uniqueness is enforced by the external stores, not here.
type Entity struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	City        string   `json:"city,omitempty"`
	Region      string   `json:"region,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
