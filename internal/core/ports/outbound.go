package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/legistra/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	List(ctx context.Context, limit int) ([]domain.Document, error)
}

// AnalysisRepository stores packaged analysis results.
type AnalysisRepository interface {
	Save(ctx context.Context, documentID string, result domain.AnalysisResult) (string, error)
	GetLatestByDocumentID(ctx context.Context, documentID string) (*domain.StoredAnalysis, error)
	ListByDocumentID(ctx context.Context, documentID string, limit int) ([]domain.StoredAnalysis, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes analysis requests.
type MessageQueue interface {
	PublishAnalysisRequested(ctx context.Context, request domain.AnalysisRequest) error
	SubscribeAnalysisRequested(ctx context.Context, handler func(context.Context, domain.AnalysisRequest) error) error
}

// TextExtractor extracts plain text from an uploaded file.
type TextExtractor interface {
	Extract(ctx context.Context, format domain.DocumentFormat, data []byte) (string, error)
}

// Summarizer produces a bounded-length summary of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// SummarizerLoader loads (or warms) a summarization model by identifier.
type SummarizerLoader interface {
	Load(ctx context.Context, modelID string) (Summarizer, error)
}

// LanguageDetector returns an ISO 639-1 code for text.
type LanguageDetector interface {
	Detect(text string) (string, error)
}

// TokenTruncator bounds text to a model context window.
type TokenTruncator interface {
	Truncate(text string, maxTokens int) string
}

// AnalysisSink receives results after they were persisted.
type AnalysisSink interface {
	Project(ctx context.Context, analysisID string, result domain.AnalysisResult) error
}

// ReportExporter renders an analysis into a downloadable report.
type ReportExporter interface {
	ContentType() string
	Export(ctx context.Context, analysis domain.StoredAnalysis, w io.Writer) error
}

// AnalysisObserver receives pipeline progress for metrics.
type AnalysisObserver interface {
	ObserveStage(mode string, stage domain.AnalysisStage)
	ObserveSummaryFallback(mode, reason string)
	ObserveAnalysis(mode string, clauseCount int, failure *domain.AnalysisError, duration time.Duration)
}
