package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	documentIDKey contextKey = "document_id"
)

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func ContextWithDocumentID(ctx context.Context, documentID string) context.Context {
	if documentID == "" {
		return ctx
	}
	return context.WithValue(ctx, documentIDKey, documentID)
}

func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func DocumentIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(documentIDKey).(string)
	return value
}

// WithContext returns logger annotated with the ids carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With("request_id", requestID)
	}
	if documentID := DocumentIDFromContext(ctx); documentID != "" {
		logger = logger.With("document_id", documentID)
	}
	return logger
}
