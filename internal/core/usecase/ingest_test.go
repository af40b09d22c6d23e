package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func newIngestUseCase(t *testing.T, repo *docRepoFake, storage *storageFake, extractor *extractorFake, queue *queueFake, maxBytes int64) *IngestDocumentUseCase {
	t.Helper()
	modes, err := NewModeRegistry(ModelNames{Summary: "sum-model"}, ModeThorough)
	if err != nil {
		t.Fatalf("NewModeRegistry() error = %v", err)
	}
	return NewIngestDocumentUseCase(repo, storage, extractor, queue, modes, maxBytes)
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := newDocRepoFake()
	storage := &storageFake{}
	extractor := &extractorFake{text: "Confidentiality Agreement: the parties agree."}
	queue := &queueFake{}
	uc := newIngestUseCase(t, repo, storage, extractor, queue, 0)

	doc, err := uc.Upload(context.Background(), "master services 1.txt", "text/plain", "FAST", bytes.NewBufferString("raw bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" || doc.Status != domain.StatusUploaded || doc.Format != domain.FormatText {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Content != extractor.text || doc.ContentSize != len(extractor.text) {
		t.Fatalf("expected extracted content on the document, got %q", doc.Content)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected repo.Create call")
	}
	if len(queue.requests) != 1 || queue.requests[0].DocumentID != doc.ID || queue.requests[0].Mode != ModeFast {
		t.Fatalf("unexpected queued requests: %+v", queue.requests)
	}
	if !strings.HasSuffix(storage.savedKey, "_master_services_1.txt") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if storage.savedBody != "raw bytes" {
		t.Fatalf("expected original bytes to be stored, got %s", storage.savedBody)
	}
}

func TestIngestUploadDefaultsMode(t *testing.T) {
	queue := &queueFake{}
	uc := newIngestUseCase(t, newDocRepoFake(), &storageFake{}, &extractorFake{text: "text"}, queue, 0)

	if _, err := uc.Upload(context.Background(), "a.pdf", "", "", bytes.NewBufferString("%PDF")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if queue.requests[0].Mode != ModeThorough {
		t.Fatalf("expected default mode, got %s", queue.requests[0].Mode)
	}
}

func TestIngestUploadRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		filename  string
		mode      string
		body      string
		extractor *extractorFake
		maxBytes  int64
	}{
		{name: "unsupported format", filename: "scan.png", body: "x", extractor: &extractorFake{}},
		{name: "unknown mode", filename: "a.txt", mode: "deep", body: "x", extractor: &extractorFake{}},
		{name: "empty file", filename: "a.txt", body: "", extractor: &extractorFake{}},
		{name: "too large", filename: "a.txt", body: "0123456789", extractor: &extractorFake{}, maxBytes: 4},
		{name: "extraction failure", filename: "a.pdf", body: "garbage", extractor: &extractorFake{err: errors.New("malformed pdf")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newDocRepoFake()
			queue := &queueFake{}
			uc := newIngestUseCase(t, repo, &storageFake{}, tc.extractor, queue, tc.maxBytes)

			_, err := uc.Upload(context.Background(), tc.filename, "", tc.mode, strings.NewReader(tc.body))
			if !domain.IsKind(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if len(repo.created) != 0 || len(queue.requests) != 0 {
				t.Fatalf("rejected uploads must not be stored or queued")
			}
		})
	}
}

func TestIngestUploadQueueError(t *testing.T) {
	queue := &queueFake{err: errors.New("queue down")}
	uc := newIngestUseCase(t, newDocRepoFake(), &storageFake{}, &extractorFake{text: "text"}, queue, 0)

	_, err := uc.Upload(context.Background(), "report.txt", "text/plain", "", bytes.NewBufferString("hello"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish analysis request") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		filename string
		mimeType string
		want     domain.DocumentFormat
	}{
		{filename: "a.TXT", want: domain.FormatText},
		{filename: "a.pdf", want: domain.FormatPDF},
		{filename: "a.docx", want: domain.FormatDOCX},
		{filename: "a.htm", want: domain.FormatHTML},
		{filename: "upload", mimeType: "application/pdf", want: domain.FormatPDF},
		{filename: "upload", mimeType: "text/html; charset=utf-8", want: domain.FormatHTML},
	}
	for _, tc := range cases {
		got, err := DetectFormat(tc.filename, tc.mimeType)
		if err != nil {
			t.Fatalf("DetectFormat(%q, %q) error = %v", tc.filename, tc.mimeType, err)
		}
		if got != tc.want {
			t.Fatalf("DetectFormat(%q, %q) = %s, want %s", tc.filename, tc.mimeType, got, tc.want)
		}
	}

	if _, err := DetectFormat("a.doc", "application/msword"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected legacy .doc to be rejected, got %v", err)
	}
}
