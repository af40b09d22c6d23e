package httpadapter

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/kirillkom/legistra/internal/config"
	"github.com/kirillkom/legistra/internal/core/domain"
)

type ingestFake struct {
	err      error
	lastMode string
}

func (f *ingestFake) Upload(_ context.Context, filename, mimeType, mode string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", io.EOF)
	}
	f.lastMode = mode

	now := time.Now().UTC()
	return &domain.Document{
		ID:          "doc-1",
		Filename:    filename,
		MimeType:    mimeType,
		Format:      domain.FormatText,
		StoragePath: "doc-1_" + filename,
		Content:     string(raw),
		ContentSize: len(raw),
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type analyzerFake struct {
	failure  *domain.AnalysisError
	lastMode string
}

func (f *analyzerFake) Analyze(_ context.Context, documentID, mode string) (*domain.AnalysisOutcome, *domain.AnalysisError) {
	f.lastMode = mode
	if f.failure != nil {
		return nil, f.failure
	}
	return &domain.AnalysisOutcome{
		AnalysisID: "an-1",
		Persisted:  true,
		Result: domain.AnalysisResult{
			DocumentID:   documentID,
			AnalysisType: domain.AnalysisFastMultilingual,
			Summary:      "summary",
			Clauses:      []domain.Clause{{Type: domain.ClauseTermination, Heading: "Termination"}},
			Classification: map[domain.ClauseType]float64{
				domain.ClauseTermination: 100,
			},
			Risks: []string{"Termination conditions - review notice periods"},
		},
	}, nil
}

type docsFake struct {
	err       error
	lastLimit int
}

func (f *docsFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Document{ID: id, Filename: "a.txt", MimeType: "text/plain", Format: domain.FormatText, Status: domain.StatusCompleted}, nil
}

func (f *docsFake) List(_ context.Context, limit int) ([]domain.Document, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Document{{ID: "doc-2"}, {ID: "doc-1"}}, nil
}

type analysesFake struct {
	err error
}

func (f *analysesFake) LatestAnalysis(_ context.Context, documentID string) (*domain.StoredAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.StoredAnalysis{ID: "an-1", Result: domain.AnalysisResult{DocumentID: documentID, Summary: "summary"}}, nil
}

func (f *analysesFake) ListAnalyses(_ context.Context, documentID string, _ int) ([]domain.StoredAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.StoredAnalysis{{ID: "an-2"}, {ID: "an-1"}}, nil
}

func (f *analysesFake) ExportLatest(_ context.Context, documentID string, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "report:"+documentID)
	return err
}

func (f *analysesFake) ReportContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type testDeps struct {
	ingest   *ingestFake
	analyzer *analyzerFake
	docs     *docsFake
	analyses *analysesFake
}

func newTestDeps() *testDeps {
	return &testDeps{
		ingest:   &ingestFake{},
		analyzer: &analyzerFake{},
		docs:     &docsFake{},
		analyses: &analysesFake{},
	}
}

func (d *testDeps) handler(cfg config.Config) http.Handler {
	return NewRouter(cfg, d.ingest, d.analyzer, d.docs, d.analyses).Handler()
}

func newTestHandler(cfg config.Config) http.Handler {
	return newTestDeps().handler(cfg)
}
