package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	queue     ports.MessageQueue
	modes     *ModeRegistry
	maxBytes  int64
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	queue ports.MessageQueue,
	modes *ModeRegistry,
	maxBytes int64,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		queue:     queue,
		modes:     modes,
		maxBytes:  maxBytes,
	}
}

func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType, modeName string,
	body io.Reader,
) (*domain.Document, error) {
	format, err := DetectFormat(filename, mimeType)
	if err != nil {
		return nil, err
	}
	mode, err := uc.modes.Resolve(modeName)
	if err != nil {
		return nil, err
	}

	data, err := uc.readBody(body)
	if err != nil {
		return nil, err
	}

	text, err := uc.extractor.Extract(ctx, format, data)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract text", err)
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		Format:      format,
		StoragePath: storageKey,
		Content:     text,
		ContentSize: len(text),
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	request := domain.AnalysisRequest{DocumentID: doc.ID, Mode: mode.Name, QueuedAt: now}
	if err := uc.queue.PublishAnalysisRequested(ctx, request); err != nil {
		return nil, fmt.Errorf("publish analysis request: %w", err)
	}

	return doc, nil
}

func (uc *IngestDocumentUseCase) readBody(body io.Reader) ([]byte, error) {
	if body == nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", errors.New("empty body"))
	}
	reader := body
	if uc.maxBytes > 0 {
		reader = io.LimitReader(body, uc.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if uc.maxBytes > 0 && int64(len(data)) > uc.maxBytes {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", fmt.Errorf("file exceeds %d bytes", uc.maxBytes))
	}
	if len(data) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", errors.New("empty file"))
	}
	return data, nil
}

// DetectFormat picks the document format from the file extension, falling
// back to the declared MIME type.
func DetectFormat(filename, mimeType string) (domain.DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return domain.FormatText, nil
	case ".pdf":
		return domain.FormatPDF, nil
	case ".docx":
		return domain.FormatDOCX, nil
	case ".html", ".htm":
		return domain.FormatHTML, nil
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch mediaType {
	case "text/plain":
		return domain.FormatText, nil
	case "application/pdf":
		return domain.FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return domain.FormatDOCX, nil
	case "text/html":
		return domain.FormatHTML, nil
	}
	return "", domain.WrapError(
		domain.ErrInvalidInput,
		"detect format",
		fmt.Errorf("unsupported file type %q (%s)", filename, mimeType),
	)
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}
