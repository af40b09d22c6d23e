package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kirillkom/legistra/internal/core/domain"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, documentID string, result domain.AnalysisResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal analysis result: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO analyses (id, document_id, analysis_type, language, result, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, id, documentID, string(result.AnalysisType), result.Language, payload, result.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

func (r *AnalysisRepository) GetLatestByDocumentID(ctx context.Context, documentID string) (*domain.StoredAnalysis, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, result
FROM analyses
WHERE document_id = $1
ORDER BY created_at DESC
LIMIT 1
`, documentID)

	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrAnalysisNotFound, "get latest analysis", fmt.Errorf("document_id=%s", documentID))
		}
		return nil, fmt.Errorf("get latest analysis: %w", err)
	}
	return &analysis, nil
}

func (r *AnalysisRepository) ListByDocumentID(ctx context.Context, documentID string, limit int) ([]domain.StoredAnalysis, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, result
FROM analyses
WHERE document_id = $1
ORDER BY created_at DESC
LIMIT $2
`, documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StoredAnalysis, 0)
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (domain.StoredAnalysis, error) {
	var analysis domain.StoredAnalysis
	var payload []byte
	if err := row.Scan(&analysis.ID, &payload); err != nil {
		return domain.StoredAnalysis{}, err
	}
	if err := json.Unmarshal(payload, &analysis.Result); err != nil {
		return domain.StoredAnalysis{}, fmt.Errorf("unmarshal analysis result: %w", err)
	}
	return analysis, nil
}
