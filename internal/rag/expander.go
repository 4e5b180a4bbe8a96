package rag

import (
	"context"
	"log/slog"

	"github.com/minhdn/travelgraph/internal/graph"
	"github.com/minhdn/travelgraph/internal/models"
)

const (
	// DefaultFactsPerID caps facts per source id during multi-id expansion.
	DefaultFactsPerID = 3

	// SingleFactsLimit caps facts for the single-id convenience form used by
	// the one-shot search command.
	SingleFactsLimit = 10
)

// GraphStore is the opaque labeled-property-graph store behind the expander.
type GraphStore interface {
	Outgoing(ctx context.Context, id string, limit int) ([]graph.OutgoingRow, error)
}

// GraphExpander turns a set of entity ids into typed relation facts via
// one-hop outgoing pattern matches.
type GraphExpander struct {
	store  GraphStore
	logger *slog.Logger
}

// NewGraphExpander creates an expander over store.
func NewGraphExpander(store GraphStore, logger *slog.Logger) *GraphExpander {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphExpander{store: store, logger: logger}
}

// Expand issues one outgoing-relationship query per id, in input order,
// capped at perIDLimit rows each, and flattens the results. An id with no
// outgoing edges contributes nothing; any query error propagates.
// Facts are not deduplicated: the same target appears once per source that
// links to it.
func (e *GraphExpander) Expand(ctx context.Context, ids []string, perIDLimit int) ([]models.RelationFact, error) {
	facts := []models.RelationFact{}
	for _, id := range ids {
		rows, err := e.store.Outgoing(ctx, id, perIDLimit)
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			desc := ""
			if row.Description != nil {
				desc = *row.Description
			}
			facts = append(facts, models.RelationFact{
				Source:     id,
				Relation:   row.Relation,
				TargetName: row.Name,
				TargetDesc: models.TruncateDescription(desc),
			})
		}
	}

	e.logger.Debug("graph expansion complete", "ids", len(ids), "facts", len(facts))
	return facts, nil
}

// ExpandOne is the single-id form with its larger result cap.
func (e *GraphExpander) ExpandOne(ctx context.Context, id string) ([]models.RelationFact, error) {
	return e.Expand(ctx, []string{id}, SingleFactsLimit)
}
