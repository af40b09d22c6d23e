package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// DocumentQueryUseCase serves the read side: documents, stored analyses and
// exported reports.
type DocumentQueryUseCase struct {
	docs     ports.DocumentRepository
	analyses ports.AnalysisRepository
	exporter ports.ReportExporter
}

func NewDocumentQueryUseCase(
	docs ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	exporter ports.ReportExporter,
) *DocumentQueryUseCase {
	return &DocumentQueryUseCase{docs: docs, analyses: analyses, exporter: exporter}
}

func (uc *DocumentQueryUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *DocumentQueryUseCase) List(ctx context.Context, limit int) ([]domain.Document, error) {
	docs, err := uc.docs.List(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (uc *DocumentQueryUseCase) LatestAnalysis(ctx context.Context, documentID string) (*domain.StoredAnalysis, error) {
	if _, err := uc.docs.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	analysis, err := uc.analyses.GetLatestByDocumentID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch latest analysis: %w", err)
	}
	return analysis, nil
}

func (uc *DocumentQueryUseCase) ListAnalyses(ctx context.Context, documentID string, limit int) ([]domain.StoredAnalysis, error) {
	if _, err := uc.docs.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	analyses, err := uc.analyses.ListByDocumentID(ctx, documentID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return analyses, nil
}

func (uc *DocumentQueryUseCase) ExportLatest(ctx context.Context, documentID string, w io.Writer) error {
	analysis, err := uc.LatestAnalysis(ctx, documentID)
	if err != nil {
		return err
	}
	if err := uc.exporter.Export(ctx, *analysis, w); err != nil {
		return fmt.Errorf("export analysis report: %w", err)
	}
	return nil
}

func (uc *DocumentQueryUseCase) ReportContentType() string {
	return uc.exporter.ContentType()
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
