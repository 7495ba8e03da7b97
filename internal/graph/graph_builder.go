package graph

import (
	"context"
	"fmt"

	"line-translator/internal/worker"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Term is a source text and the translation an operator settled on.
type Term struct {
	Source string
	Target string
	// Origin records where the decision came from: "compare" or "edit".
	Origin string
}

// GraphBuilder writes settled terminology into the Neo4j knowledge graph.
type GraphBuilder struct {
	driver neo4j.DriverWithContext
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(driver neo4j.DriverWithContext) *GraphBuilder {
	return &GraphBuilder{driver: driver}
}

// EnsureSchema creates constraints and indexes on the Neo4j database.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Term) REQUIRE t.source IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

const upsertTermsCypher = `
UNWIND $terms AS term
MERGE (t:Term {source: term.source})
SET t.target = term.target,
    t.origin = term.origin`

// UpsertTerms merges terms in batches of batchSize. A later term for the same
// source overwrites an earlier one.
func (gb *GraphBuilder) UpsertTerms(ctx context.Context, terms []Term, batchSize int) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	batches := worker.Batch(terms, batchSize)
	for i, batch := range batches {
		if _, err := session.Run(ctx, upsertTermsCypher, map[string]any{"terms": termParams(batch)}); err != nil {
			return fmt.Errorf("upsert term batch %d/%d: %w", i+1, len(batches), err)
		}
		log.Debug().Int("batch", i+1).Int("size", len(batch)).Msg("Upserted term batch")
	}

	log.Info().Int("terms", len(terms)).Int("batches", len(batches)).Msg("Upserted terminology")
	return nil
}

func termParams(batch []Term) []map[string]any {
	params := make([]map[string]any, 0, len(batch))
	for _, t := range batch {
		params = append(params, map[string]any{
			"source": t.Source,
			"target": t.Target,
			"origin": t.Origin,
		})
	}
	return params
}
