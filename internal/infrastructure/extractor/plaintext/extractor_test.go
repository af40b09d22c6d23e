package plaintext

import (
	"context"
	"testing"
)

func TestExtractNormalizesLineEndings(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("  Section 1 Definitions\r\nSection 2 Term\r\n")...)
	got, err := NewExtractor().Extract(context.Background(), "txt", data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Section 1 Definitions\nSection 2 Term" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtractRejectsBinary(t *testing.T) {
	if _, err := NewExtractor().Extract(context.Background(), "txt", []byte{0xff, 0xfe, 0x00}); err == nil {
		t.Fatalf("expected error for invalid utf-8")
	}
}
