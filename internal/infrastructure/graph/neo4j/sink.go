package neo4j

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kirillkom/legistra/internal/core/domain"
)

type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// queryRunner executes one write statement.
type queryRunner interface {
	Run(ctx context.Context, cypher string, params map[string]any) error
	Close(ctx context.Context) error
}

// ClauseGraph projects analysis results into a clause graph:
// (Document)-[:HAS_CLAUSE {count}]->(ClauseType).
type ClauseGraph struct {
	runner queryRunner
}

func New(ctx context.Context, cfg Config) (*ClauseGraph, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &ClauseGraph{runner: &driverRunner{driver: driver, database: cfg.Database}}, nil
}

func newWithRunner(runner queryRunner) *ClauseGraph {
	return &ClauseGraph{runner: runner}
}

func (g *ClauseGraph) Close(ctx context.Context) error {
	return g.runner.Close(ctx)
}

const clearEdgesCypher = `
MATCH (d:Document {id: $document_id})-[r:HAS_CLAUSE]->(:ClauseType)
DELETE r`

const projectCypher = `
MERGE (d:Document {id: $document_id})
SET d.analysis_id = $analysis_id,
    d.analysis_type = $analysis_type,
    d.language = $language,
    d.risk_count = $risk_count,
    d.analyzed_at = $analyzed_at
WITH d
UNWIND $clauses AS clause
MERGE (t:ClauseType {name: clause.type})
MERGE (d)-[r:HAS_CLAUSE]->(t)
SET r.count = clause.count, r.share = clause.share`

// Project replaces the clause edges of the analyzed document.
func (g *ClauseGraph) Project(ctx context.Context, analysisID string, result domain.AnalysisResult) error {
	params := map[string]any{"document_id": result.DocumentID}
	if err := g.runner.Run(ctx, clearEdgesCypher, params); err != nil {
		return fmt.Errorf("clear clause edges: %w", err)
	}

	params = map[string]any{
		"document_id":   result.DocumentID,
		"analysis_id":   analysisID,
		"analysis_type": string(result.AnalysisType),
		"language":      result.Language,
		"risk_count":    int64(len(result.Risks)),
		"analyzed_at":   result.CreatedAt.UTC().Format(time.RFC3339),
		"clauses":       clauseRows(result),
	}
	if err := g.runner.Run(ctx, projectCypher, params); err != nil {
		return fmt.Errorf("project clause graph: %w", err)
	}
	return nil
}

// clauseRows counts clauses per type in a stable order.
func clauseRows(result domain.AnalysisResult) []any {
	counts := make(map[domain.ClauseType]int64)
	for _, clause := range result.Clauses {
		counts[clause.Type]++
	}
	types := make([]string, 0, len(counts))
	for clauseType := range counts {
		types = append(types, string(clauseType))
	}
	sort.Strings(types)

	rows := make([]any, 0, len(types))
	for _, name := range types {
		clauseType := domain.ClauseType(name)
		rows = append(rows, map[string]any{
			"type":  name,
			"count": counts[clauseType],
			"share": result.Classification[clauseType],
		})
	}
	return rows
}

type driverRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

func (r *driverRunner) Run(ctx context.Context, cypher string, params map[string]any) error {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if r.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(r.database))
	}
	_, err := neo4j.ExecuteQuery(ctx, r.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
	return err
}

func (r *driverRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}
