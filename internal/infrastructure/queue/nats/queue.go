package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/infrastructure/resilience"
)

const workerGroup = "analysis-workers"

type Queue struct {
	conn           *nats.Conn
	subject        string
	executor       *resilience.Executor
	logger         *slog.Logger
	handlerTimeout time.Duration
}

func New(url, subject string) (*Queue, error) {
	return NewWithOptions(url, subject, Options{})
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
	Logger               *slog.Logger
	// HandlerTimeout bounds the handler context; zero leaves it unbounded.
	// Analyses detach from it once their document is loaded.
	HandlerTimeout time.Duration
}

func NewWithOptions(url, subject string, options Options) (*Queue, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("legistra"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{
		conn:           conn,
		subject:        subject,
		executor:       options.ResilienceExecutor,
		logger:         logger,
		handlerTimeout: options.HandlerTimeout,
	}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

func (q *Queue) PublishAnalysisRequested(ctx context.Context, request domain.AnalysisRequest) error {
	payload, err := encodeRequest(request)
	if err != nil {
		return err
	}

	_, err = resilience.Call(ctx, q.executor, resilience.OperationPublish, func(context.Context) (struct{}, error) {
		if err := q.conn.Publish(q.subject, payload); err != nil {
			return struct{}{}, fmt.Errorf("nats publish: %w", err)
		}
		return struct{}{}, nil
	}, classifyNATSError)
	return publishError(err)
}

func (q *Queue) SubscribeAnalysisRequested(ctx context.Context, handler func(context.Context, domain.AnalysisRequest) error) error {
	sub, err := q.conn.QueueSubscribe(q.subject, workerGroup, func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		request, err := decodeRequest(msg.Data)
		if err != nil {
			q.logger.Error("analysis_request_rejected", "error", err, "payload_bytes", len(msg.Data))
			return
		}

		handlerCtx, cancel := q.handlerContext(ctx)
		defer cancel()
		if err := handler(handlerCtx, request); err != nil {
			q.logger.Error("analysis_task_failed", "document_id", request.DocumentID, "mode", request.Mode, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

func (q *Queue) handlerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.handlerTimeout > 0 {
		return context.WithTimeout(ctx, q.handlerTimeout)
	}
	return context.WithCancel(ctx)
}

func encodeRequest(request domain.AnalysisRequest) ([]byte, error) {
	if strings.TrimSpace(request.DocumentID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "encode analysis request", errors.New("empty document id"))
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}
	return payload, nil
}

func decodeRequest(data []byte) (domain.AnalysisRequest, error) {
	var request domain.AnalysisRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return domain.AnalysisRequest{}, fmt.Errorf("decode analysis request: %w", err)
	}
	if strings.TrimSpace(request.DocumentID) == "" {
		return domain.AnalysisRequest{}, errors.New("decode analysis request: empty document id")
	}
	return request, nil
}
