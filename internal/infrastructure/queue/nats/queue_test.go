package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func TestRequestCodecRoundTrip(t *testing.T) {
	queuedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	payload, err := encodeRequest(domain.AnalysisRequest{DocumentID: "doc-1", Mode: "fast", QueuedAt: queuedAt})
	if err != nil {
		t.Fatalf("encodeRequest() error = %v", err)
	}
	got, err := decodeRequest(payload)
	if err != nil {
		t.Fatalf("decodeRequest() error = %v", err)
	}
	if got.DocumentID != "doc-1" || got.Mode != "fast" || !got.QueuedAt.Equal(queuedAt) {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	for _, payload := range []string{"doc-1", `{"mode":"fast"}`, `{"document_id":"  "}`} {
		if _, err := decodeRequest([]byte(payload)); err == nil {
			t.Fatalf("decodeRequest(%q) expected error", payload)
		}
	}
}

func TestEncodeRejectsEmptyDocumentID(t *testing.T) {
	if _, err := encodeRequest(domain.AnalysisRequest{}); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestClassifyNATSError(t *testing.T) {
	if c := classifyNATSError(nats.ErrTimeout); !c.Retryable || !c.RecordFailure {
		t.Fatalf("timeouts must be retryable, got %+v", c)
	}
	if c := classifyNATSError(context.Canceled); c.Retryable || c.RecordFailure {
		t.Fatalf("cancellation must be ignored, got %+v", c)
	}
	if c := classifyNATSError(nats.ErrBadSubject); c.Retryable {
		t.Fatalf("bad subject must not be retried, got %+v", c)
	}
}

func TestPublishErrorMarksConnectionFailuresTemporary(t *testing.T) {
	if err := publishError(nats.ErrNoServers); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary, got %v", err)
	}
	if err := publishError(nats.ErrConnectionReconnecting); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("reconnecting must be temporary, got %v", err)
	}
	permanent := errors.New("bad payload")
	if err := publishError(permanent); domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("permanent errors must stay as-is")
	}
	if publishError(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
