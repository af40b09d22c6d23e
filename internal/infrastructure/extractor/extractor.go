package extractor

import (
	"context"
	"fmt"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
	"github.com/kirillkom/legistra/internal/infrastructure/extractor/docxtext"
	"github.com/kirillkom/legistra/internal/infrastructure/extractor/htmltext"
	"github.com/kirillkom/legistra/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/legistra/internal/infrastructure/extractor/plaintext"
)

// Dispatcher routes extraction to the extractor registered for a format.
type Dispatcher struct {
	byFormat map[domain.DocumentFormat]ports.TextExtractor
}

func New() *Dispatcher {
	return NewWith(map[domain.DocumentFormat]ports.TextExtractor{
		domain.FormatText: plaintext.NewExtractor(),
		domain.FormatPDF:  pdftext.NewExtractor(),
		domain.FormatDOCX: docxtext.NewExtractor(),
		domain.FormatHTML: htmltext.NewExtractor(),
	})
}

func NewWith(byFormat map[domain.DocumentFormat]ports.TextExtractor) *Dispatcher {
	return &Dispatcher{byFormat: byFormat}
}

func (d *Dispatcher) Extract(ctx context.Context, format domain.DocumentFormat, data []byte) (string, error) {
	extractor, ok := d.byFormat[format]
	if !ok {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", fmt.Errorf("unsupported format %q", format))
	}
	text, err := extractor.Extract(ctx, format, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", format, err)
	}
	return text, nil
}
