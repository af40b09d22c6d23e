package plaintext

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/legistra/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, _ domain.DocumentFormat, data []byte) (string, error) {
	raw := bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(raw) {
		return "", errors.New("plain text is not valid utf-8")
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	return strings.TrimSpace(text), nil
}
