package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/legistra/internal/config"
	"github.com/kirillkom/legistra/internal/core/ports"
	"github.com/kirillkom/legistra/internal/core/usecase"
	"github.com/kirillkom/legistra/internal/infrastructure/extractor"
	"github.com/kirillkom/legistra/internal/infrastructure/graph/neo4j"
	"github.com/kirillkom/legistra/internal/infrastructure/language/whatlang"
	"github.com/kirillkom/legistra/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/legistra/internal/infrastructure/queue/nats"
	"github.com/kirillkom/legistra/internal/infrastructure/report/xlsx"
	"github.com/kirillkom/legistra/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/legistra/internal/infrastructure/resilience"
	"github.com/kirillkom/legistra/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/legistra/internal/infrastructure/storage/minio"
	"github.com/kirillkom/legistra/internal/infrastructure/tokenizer/tiktoken"
)

// Options carries process-specific collaborators.
type Options struct {
	Logger               *slog.Logger
	Observer             ports.AnalysisObserver
	OnBreakerStateChange func(operation, from, to string)
}

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Modes     *usecase.ModeRegistry
	IngestUC  ports.DocumentIngestor
	AnalyzeUC *usecase.AnalyzeDocumentUseCase
	QueryUC   *usecase.DocumentQueryUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := loggerOrDefault(opts.Logger)

	engine, err := newEngine(cfg, opts)
	if err != nil {
		return nil, err
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	closers := []func(){func() { _ = db.Close() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*App, error) {
		closeAll()
		return nil, err
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return fail(fmt.Errorf("ensure schema: %w", err))
	}
	docs := postgres.NewDocumentRepository(db)
	analyses := postgres.NewAnalysisRepository(db)

	storage, err := newObjectStorage(ctx, cfg)
	if err != nil {
		return fail(fmt.Errorf("init object storage: %w", err))
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: engine.executor,
		Logger:             logger,
		HandlerTimeout:     time.Duration(cfg.AnalysisTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fail(fmt.Errorf("init message queue: %w", err))
	}
	closers = append(closers, queue.Close)

	var sinks []ports.AnalysisSink
	if cfg.Neo4jURI != "" {
		graph, err := neo4j.New(ctx, neo4j.Config{
			URI:      cfg.Neo4jURI,
			Username: cfg.Neo4jUsername,
			Password: cfg.Neo4jPassword,
			Database: cfg.Neo4jDatabase,
		})
		if err != nil {
			return fail(fmt.Errorf("init clause graph: %w", err))
		}
		closers = append(closers, func() { _ = graph.Close(context.Background()) })
		sinks = append(sinks, graph)
	}

	ingestUC := usecase.NewIngestDocumentUseCase(docs, storage, extractor.New(), queue, engine.modes, cfg.MaxUploadBytes)
	analyzeUC := usecase.NewAnalyzeDocumentUseCase(
		docs,
		analyses,
		engine.modes,
		engine.models,
		engine.detector,
		engine.truncator,
		usecase.AnalyzeOptions{
			Sinks:         sinks,
			Observer:      opts.Observer,
			Logger:        logger,
			TokenizerName: engine.truncator.Name(),
		},
	)
	queryUC := usecase.NewDocumentQueryUseCase(docs, analyses, xlsx.NewExporter())

	return &App{
		Config:    cfg,
		Queue:     queue,
		Modes:     engine.modes,
		IngestUC:  ingestUC,
		AnalyzeUC: analyzeUC,
		QueryUC:   queryUC,
		closeFn:   closeAll,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// NewTextAnalyzer builds the pipeline without storage for the CLI and MCP.
func NewTextAnalyzer(cfg config.Config, opts Options) (*usecase.TextAnalyzer, *usecase.ModeRegistry, error) {
	engine, err := newEngine(cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	analyzer := usecase.NewTextAnalyzer(engine.modes, engine.models, engine.detector, engine.truncator, usecase.AnalyzeOptions{
		Observer:      opts.Observer,
		Logger:        loggerOrDefault(opts.Logger),
		TokenizerName: engine.truncator.Name(),
	})
	return analyzer, engine.modes, nil
}

type engine struct {
	executor  *resilience.Executor
	modes     *usecase.ModeRegistry
	models    *usecase.ModelCache
	detector  *whatlang.Detector
	truncator *tiktoken.Truncator
}

func newEngine(cfg config.Config, opts Options) (*engine, error) {
	languageModels, err := cfg.LanguageModels()
	if err != nil {
		return nil, err
	}
	truncator, err := tiktoken.New(cfg.TokenizerEncoding)
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}
	modes, err := usecase.NewModeRegistry(usecase.ModelNames{
		Summary:         cfg.SummaryModel,
		Fallback:        cfg.FallbackSummaryModel,
		LanguageSummary: languageModels,
		Tokenizer:       truncator.Name(),
	}, cfg.DefaultAnalysisMode)
	if err != nil {
		return nil, fmt.Errorf("init analysis modes: %w", err)
	}

	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.Logger = loggerOrDefault(opts.Logger)
	resilienceCfg.OnStateChange = opts.OnBreakerStateChange
	executor := resilience.NewExecutor(resilienceCfg)

	client := ollama.New(cfg.OllamaURL, time.Duration(cfg.OllamaTimeoutSeconds)*time.Second, executor)

	return &engine{
		executor:  executor,
		modes:     modes,
		models:    usecase.NewModelCache(ollama.NewLoader(client)),
		detector:  whatlang.New(cfg.LanguageMinConfidence),
		truncator: truncator,
	}, nil
}

func newObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "", "localfs":
		storage, err := localfs.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case "minio":
		storage, err := minio.New(minio.Config{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			Region:    cfg.MinIORegion,
			UseSSL:    cfg.MinIOUseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

