package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
)

// AnalyzeOptions carries the optional collaborators of the orchestrator.
type AnalyzeOptions struct {
	Sinks         []ports.AnalysisSink
	Observer      ports.AnalysisObserver
	Logger        *slog.Logger
	TokenizerName string
	Now           func() time.Time
}

type AnalyzeDocumentUseCase struct {
	*pipeline

	docs     ports.DocumentRepository
	analyses ports.AnalysisRepository
	modes    *ModeRegistry
	sinks    []ports.AnalysisSink
}

func NewAnalyzeDocumentUseCase(
	docs ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	modes *ModeRegistry,
	models *ModelCache,
	detector ports.LanguageDetector,
	truncator ports.TokenTruncator,
	opts AnalyzeOptions,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		pipeline: newPipeline(models, detector, truncator, opts),
		docs:     docs,
		analyses: analyses,
		modes:    modes,
		sinks:    opts.Sinks,
	}
}

// Analyze runs one analysis and returns either an outcome or a typed failure.
// Summarization and persistence failures are reported as outcome warnings.
func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, documentID, modeName string) (*domain.AnalysisOutcome, *domain.AnalysisError) {
	started := uc.now()

	mode, err := uc.modes.Resolve(modeName)
	if err != nil {
		return nil, domain.NewAnalysisError(domain.KindCriticalFailure, documentID, domain.StageFetchingDocument, err)
	}

	outcome, failure := uc.run(ctx, documentID, mode, started)

	clauseCount := 0
	if outcome != nil {
		clauseCount = len(outcome.Result.Clauses)
	}
	uc.observer.ObserveAnalysis(mode.Name, clauseCount, failure, uc.now().Sub(started))
	if failure != nil {
		uc.enterStage(mode, documentID, domain.StageFailed)
		uc.logger.Error("analysis_failed",
			"document_id", documentID,
			"mode", mode.Name,
			"kind", failure.Kind,
			"stage", failure.Stage,
			"error", failure.Err,
		)
	}
	return outcome, failure
}

// ProcessByID is the queue entry point. It returns an error only when the
// task itself must be marked failed.
func (uc *AnalyzeDocumentUseCase) ProcessByID(ctx context.Context, documentID, modeName string) error {
	_, failure := uc.Analyze(ctx, documentID, modeName)
	if failure != nil {
		return failure
	}
	return nil
}

func (uc *AnalyzeDocumentUseCase) run(
	ctx context.Context,
	documentID string,
	mode Mode,
	started time.Time,
) (outcome *domain.AnalysisOutcome, failure *domain.AnalysisError) {
	stage := domain.StageFetchingDocument
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			failure = domain.NewAnalysisError(domain.KindCriticalFailure, documentID, stage, fmt.Errorf("panic: %v", r))
			uc.markError(context.WithoutCancel(ctx), documentID, failure)
		}
	}()

	uc.enterStage(mode, documentID, stage)
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		if domain.IsKind(err, domain.ErrDocumentNotFound) {
			return nil, domain.NewAnalysisError(domain.KindDocumentNotFound, documentID, stage, err)
		}
		failure = domain.NewAnalysisError(domain.KindCriticalFailure, documentID, stage, fmt.Errorf("fetch document by id: %w", err))
		uc.markError(context.WithoutCancel(ctx), documentID, failure)
		return nil, failure
	}

	// Once fetched, the document runs to a terminal status even if the
	// caller goes away or its deadline passes.
	ctx = context.WithoutCancel(ctx)
	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		uc.logger.Warn("analysis_status_update_failed", "document_id", documentID, "status", domain.StatusProcessing, "error", err)
	}

	result, warnings := uc.execute(ctx, mode, documentID, doc.Content, started, &stage)

	stage = domain.StagePersisting
	uc.enterStage(mode, documentID, stage)
	analysisID, err := uc.analyses.Save(ctx, documentID, result)
	if err != nil {
		persistErr := domain.NewAnalysisError(domain.KindPersistenceFailure, documentID, stage,
			domain.WrapError(domain.ErrPersistence, "save analysis", err))
		uc.logger.Error("analysis_persist_failed", "document_id", documentID, "mode", mode.Name, "error", persistErr.Err)
		uc.markError(ctx, documentID, persistErr)
		return &domain.AnalysisOutcome{
			Persisted: false,
			Result:    result,
			Warnings:  append(warnings, persistErr),
		}, nil
	}

	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusCompleted, ""); err != nil {
		statusErr := domain.NewAnalysisError(domain.KindPersistenceFailure, documentID, stage,
			domain.WrapError(domain.ErrPersistence, "set status=completed", err))
		uc.logger.Error("analysis_status_update_failed", "document_id", documentID, "status", domain.StatusCompleted, "error", err)
		uc.markError(ctx, documentID, statusErr)
		warnings = append(warnings, statusErr)
	}

	uc.project(ctx, analysisID, result)

	uc.enterStage(mode, documentID, domain.StageDone)
	uc.logger.Info("analysis_completed",
		"document_id", documentID,
		"analysis_id", analysisID,
		"mode", mode.Name,
		"clauses", len(result.Clauses),
		"risks", len(result.Risks),
		"processing_time", result.ProcessingTime,
	)
	return &domain.AnalysisOutcome{
		AnalysisID: analysisID,
		Persisted:  true,
		Result:     result,
		Warnings:   warnings,
	}, nil
}

func (uc *AnalyzeDocumentUseCase) project(ctx context.Context, analysisID string, result domain.AnalysisResult) {
	for _, sink := range uc.sinks {
		if err := sink.Project(ctx, analysisID, result); err != nil {
			uc.logger.Warn("analysis_projection_failed",
				"document_id", result.DocumentID,
				"analysis_id", analysisID,
				"error", err,
			)
		}
	}
}

// markError is best-effort: the original failure is what callers see.
func (uc *AnalyzeDocumentUseCase) markError(ctx context.Context, documentID string, failure *domain.AnalysisError) {
	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusError, failure.Error()); err != nil {
		uc.logger.Warn("analysis_status_update_failed", "document_id", documentID, "status", domain.StatusError, "error", err)
	}
}
