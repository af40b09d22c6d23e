package extractor

import (
	"context"
	"testing"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func TestDispatchByFormat(t *testing.T) {
	d := New()

	got, err := d.Extract(context.Background(), domain.FormatText, []byte("Section 1 Term\r\n"))
	if err != nil {
		t.Fatalf("Extract(txt) error = %v", err)
	}
	if got != "Section 1 Term" {
		t.Fatalf("unexpected text %q", got)
	}

	got, err = d.Extract(context.Background(), domain.FormatHTML, []byte("<p>Governing law</p>"))
	if err != nil || got != "Governing law" {
		t.Fatalf("Extract(html) = %q, %v", got, err)
	}
}

func TestDispatchUnknownFormat(t *testing.T) {
	_, err := New().Extract(context.Background(), "rtf", []byte("{\\rtf1}"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDispatchWrapsExtractorError(t *testing.T) {
	_, err := New().Extract(context.Background(), domain.FormatDOCX, []byte("not a zip"))
	if err == nil {
		t.Fatalf("expected error")
	}
}
