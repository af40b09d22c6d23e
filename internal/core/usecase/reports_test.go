package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func TestLatestAnalysisRequiresDocument(t *testing.T) {
	uc := NewDocumentQueryUseCase(newDocRepoFake(), &analysisRepoFake{}, &exporterFake{})

	_, err := uc.LatestAnalysis(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected document not found, got %v", err)
	}
}

func TestLatestAnalysisNotFound(t *testing.T) {
	docs := newDocRepoFake(&domain.Document{ID: "doc-1"})
	uc := NewDocumentQueryUseCase(docs, &analysisRepoFake{}, &exporterFake{})

	_, err := uc.LatestAnalysis(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrAnalysisNotFound) {
		t.Fatalf("expected analysis not found, got %v", err)
	}
}

func TestExportLatestWritesReport(t *testing.T) {
	docs := newDocRepoFake(&domain.Document{ID: "doc-1"})
	analyses := &analysisRepoFake{latest: &domain.StoredAnalysis{ID: "an-7", Result: domain.AnalysisResult{DocumentID: "doc-1"}}}
	exporter := &exporterFake{}
	uc := NewDocumentQueryUseCase(docs, analyses, exporter)

	var buf bytes.Buffer
	if err := uc.ExportLatest(context.Background(), "doc-1", &buf); err != nil {
		t.Fatalf("ExportLatest() error = %v", err)
	}
	if buf.String() != "report:an-7" {
		t.Fatalf("unexpected report body %q", buf.String())
	}
	if exporter.exported == nil || exporter.exported.ID != "an-7" {
		t.Fatalf("expected exporter to receive an-7")
	}
	if uc.ReportContentType() != "application/test" {
		t.Fatalf("unexpected content type %q", uc.ReportContentType())
	}
}

func TestListClampsLimit(t *testing.T) {
	docs := newDocRepoFake(&domain.Document{ID: "doc-1"})
	uc := NewDocumentQueryUseCase(docs, &analysisRepoFake{}, &exporterFake{})

	cases := map[int]int{0: 20, -3: 20, 7: 7, 1000: 100}
	for in, want := range cases {
		if _, err := uc.List(context.Background(), in); err != nil {
			t.Fatalf("List(%d) error = %v", in, err)
		}
		if docs.listed != want {
			t.Fatalf("List(%d) used limit %d, want %d", in, docs.listed, want)
		}
	}
}
