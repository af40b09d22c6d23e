package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/legistra/internal/infrastructure/resilience"
)

// classifyNATSError retries connection-level failures only. Payload and
// subject errors are deterministic and fail fast.
func classifyNATSError(err error) resilience.ErrorClassification {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return resilience.Ignored
	case resilience.IsCircuitOpen(err),
		errors.Is(err, nats.ErrNoServers),
		errors.Is(err, nats.ErrTimeout),
		errors.Is(err, nats.ErrConnectionClosed),
		errors.Is(err, nats.ErrConnectionReconnecting),
		errors.Is(err, nats.ErrDisconnected):
		return resilience.Transient
	default:
		return resilience.Permanent
	}
}

func publishError(err error) error {
	return resilience.WrapTemporary("nats publish", err, classifyNATSError)
}
