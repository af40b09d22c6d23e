package ports

import (
	"context"
	"io"

	"github.com/kirillkom/legistra/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType, mode string, body io.Reader) (*domain.Document, error)
}

// DocumentAnalyzer runs one analysis synchronously and returns a typed failure.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, documentID, mode string) (*domain.AnalysisOutcome, *domain.AnalysisError)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, limit int) ([]domain.Document, error)
}

// AnalysisReader serves stored analyses and their exported reports.
type AnalysisReader interface {
	LatestAnalysis(ctx context.Context, documentID string) (*domain.StoredAnalysis, error)
	ListAnalyses(ctx context.Context, documentID string, limit int) ([]domain.StoredAnalysis, error)
	ExportLatest(ctx context.Context, documentID string, w io.Writer) error
	ReportContentType() string
}

// DocumentProcessor is the inbound contract for queued analysis tasks.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID, mode string) error
}
