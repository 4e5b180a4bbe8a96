package graph

import (
	"context"
	"fmt"

	"github.com/minhdn/travelgraph/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// OutgoingRow is one row of an outgoing-relationship pattern match.
// Description is nullable in the store and stays a pointer here; callers
// normalize it to an empty string.
type OutgoingRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Relation    string  `json:"relation"`
}

// Outgoing returns up to limit outgoing relationships of one entity.
// Zero rows is not an error: an unknown id simply contributes nothing.
func (c *Client) Outgoing(ctx context.Context, id string, limit int) ([]OutgoingRow, error) {
	// LIMIT must be a literal in SurrealQL, same constraint as graph depth.
	sql := fmt.Sprintf(`
		SELECT record::id(out) AS id, out.name AS name,
		       out.description AS description, rel_type AS relation
		FROM type::record("place", $id)->related LIMIT %d
	`, limit)

	results, err := surrealdb.Query[[]OutgoingRow](ctx, c.db, sql, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("outgoing relations for %s: %w", id, err)
	}

	if results == nil || len(*results) == 0 {
		return []OutgoingRow{}, nil
	}
	return (*results)[0].Result, nil
}

// UpsertPlace creates or updates a place node. The entity type is validated
// against the closed enumeration before it reaches the store.
func (c *Client) UpsertPlace(ctx context.Context, e models.Entity) error {
	if !models.EntityType(e.Type).Valid() {
		return fmt.Errorf("invalid entity type: %q", e.Type)
	}

	sql := `
		UPSERT type::record("place", $id) SET
			type = $type,
			name = $name,
			description = $description,
			city = $city,
			region = $region,
			tags = $tags
	`
	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":          e.ID,
		"type":        e.Type,
		"name":        e.Name,
		"description": e.Description,
		"city":        e.City,
		"region":      e.Region,
		"tags":        append([]string{}, e.Tags...),
	})
	if err != nil {
		return fmt.Errorf("upsert place %s: %w", e.ID, err)
	}
	return nil
}

// Relate creates a typed directed edge between two places. The relation type
// is validated against the closed enumeration before it reaches the store.
func (c *Client) Relate(ctx context.Context, fromID string, relType models.RelationType, toID string) error {
	if !relType.Valid() {
		return fmt.Errorf("invalid relation type: %q", relType)
	}

	sql := `
		RELATE type::record("place", $from)->related->type::record("place", $to) SET
			rel_type = $rel_type
	`
	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"from":     fromID,
		"to":       toID,
		"rel_type": string(relType),
	})
	if err != nil {
		return fmt.Errorf("relate %s -> %s: %w", fromID, toID, err)
	}
	return nil
}

// TypeCount is an entity type with its node count.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountsByType returns node counts grouped by entity type, descending.
func (c *Client) CountsByType(ctx context.Context) ([]TypeCount, error) {
	sql := `
		SELECT type, count() AS count FROM place
		GROUP BY type ORDER BY count DESC
	`
	results, err := surrealdb.Query[[]TypeCount](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("counts by type: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []TypeCount{}, nil
	}
	return (*results)[0].Result, nil
}

type countRow struct {
	Count int `json:"count"`
}

// CountPlaces returns the total number of place nodes.
func (c *Client) CountPlaces(ctx context.Context) (int, error) {
	return c.countTable(ctx, "SELECT count() AS count FROM place GROUP ALL")
}

// CountRelations returns the total number of edges.
func (c *Client) CountRelations(ctx context.Context) (int, error) {
	return c.countTable(ctx, "SELECT count() AS count FROM related GROUP ALL")
}

func (c *Client) countTable(ctx context.Context, sql string) (int, error) {
	results, err := surrealdb.Query[[]countRow](ctx, c.db, sql, nil)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].Count, nil
}

// SampleRow is a node preview for diagnostics.
type SampleRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SamplePlaces returns up to limit nodes for a quick health check.
func (c *Client) SamplePlaces(ctx context.Context, limit int) ([]SampleRow, error) {
	sql := fmt.Sprintf(`
		SELECT record::id(id) AS id, name, type FROM place LIMIT %d
	`, limit)
	results, err := surrealdb.Query[[]SampleRow](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("sample places: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []SampleRow{}, nil
	}
	return (*results)[0].Result, nil
}
