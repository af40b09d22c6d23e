package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/legistra/internal/core/clauses"
	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
)

// pipeline holds the stateless analysis steps shared by the document
// orchestrator and the raw text analyzer.
type pipeline struct {
	models        *ModelCache
	detector      ports.LanguageDetector
	truncator     ports.TokenTruncator
	observer      ports.AnalysisObserver
	logger        *slog.Logger
	tokenizerName string
	now           func() time.Time
}

func newPipeline(models *ModelCache, detector ports.LanguageDetector, truncator ports.TokenTruncator, opts AnalyzeOptions) *pipeline {
	p := &pipeline{
		models:        models,
		detector:      detector,
		truncator:     truncator,
		observer:      opts.Observer,
		logger:        opts.Logger,
		tokenizerName: opts.TokenizerName,
		now:           opts.Now,
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// execute runs language detection through classification. stage tracks the
// current step for panic reporting.
func (p *pipeline) execute(
	ctx context.Context,
	mode Mode,
	documentID, content string,
	started time.Time,
	stage *domain.AnalysisStage,
) (domain.AnalysisResult, []*domain.AnalysisError) {
	var language string
	if mode.DetectLanguage {
		*stage = domain.StageDetectingLanguage
		p.enterStage(mode, documentID, *stage)
		language = detectLanguage(p.detector, content, p.logger)
	}

	*stage = domain.StagePreprocessing
	p.enterStage(mode, documentID, *stage)
	text := content
	if mode.Preprocess {
		text = clauses.Preprocess(text, language)
	}

	*stage = domain.StageSummarizing
	p.enterStage(mode, documentID, *stage)
	summary := p.summarize(ctx, mode, documentID, text, language)
	var warnings []*domain.AnalysisError
	if summary.warning != nil {
		warnings = append(warnings, summary.warning)
	}

	extraction := clauses.Extract(text, mode.Profile, language, func(next domain.AnalysisStage) {
		*stage = next
		p.enterStage(mode, documentID, next)
	})

	result := domain.AnalysisResult{
		DocumentID:     documentID,
		AnalysisType:   mode.AnalysisType,
		Summary:        summary.text,
		Language:       language,
		Clauses:        extraction.Clauses,
		Classification: extraction.Classification,
		Risks:          extraction.Risks,
		ModelVersions:  p.modelVersions(mode, summary.model, language),
		CreatedAt:      p.now().UTC(),
	}
	result.ProcessingTime = p.now().Sub(started).Seconds()
	return result, warnings
}

func (p *pipeline) modelVersions(mode Mode, summarizer, language string) map[string]string {
	versions := map[string]string{"summarizer": summarizer}
	switch mode.Summarizer.Strategy {
	case SummaryExtractive:
		versions["language"] = language
		versions["analysis_type"] = string(mode.AnalysisType)
	default:
		versions["tokenizer"] = p.tokenizerName
		if mode.DetectLanguage {
			versions["language"] = language
		}
	}
	return versions
}

func (p *pipeline) enterStage(mode Mode, documentID string, stage domain.AnalysisStage) {
	p.observer.ObserveStage(mode.Name, stage)
	p.logger.Debug("analysis_stage", "document_id", documentID, "mode", mode.Name, "stage", stage)
}

const inlineDocumentID = "inline"

// TextAnalyzer runs the pipeline over raw text. Nothing is persisted.
type TextAnalyzer struct {
	*pipeline

	modes *ModeRegistry
}

func NewTextAnalyzer(
	modes *ModeRegistry,
	models *ModelCache,
	detector ports.LanguageDetector,
	truncator ports.TokenTruncator,
	opts AnalyzeOptions,
) *TextAnalyzer {
	return &TextAnalyzer{
		pipeline: newPipeline(models, detector, truncator, opts),
		modes:    modes,
	}
}

// AnalyzeText analyzes text under label, which stands in for a document id.
func (a *TextAnalyzer) AnalyzeText(
	ctx context.Context,
	label, text, modeName string,
) (outcome *domain.AnalysisOutcome, failure *domain.AnalysisError) {
	started := a.now()
	label = strings.TrimSpace(label)
	if label == "" {
		label = inlineDocumentID
	}

	stage := domain.StagePreprocessing
	mode, err := a.modes.Resolve(modeName)
	if err != nil {
		return nil, domain.NewAnalysisError(domain.KindCriticalFailure, label, stage, err)
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			failure = domain.NewAnalysisError(domain.KindCriticalFailure, label, stage, fmt.Errorf("panic: %v", r))
		}
		clauseCount := 0
		if outcome != nil {
			clauseCount = len(outcome.Result.Clauses)
		}
		a.observer.ObserveAnalysis(mode.Name, clauseCount, failure, a.now().Sub(started))
	}()

	result, warnings := a.execute(ctx, mode, label, text, started, &stage)
	a.enterStage(mode, label, domain.StageDone)
	return &domain.AnalysisOutcome{Persisted: false, Result: result, Warnings: warnings}, nil
}

type nopObserver struct{}

func (nopObserver) ObserveStage(string, domain.AnalysisStage) {}

func (nopObserver) ObserveSummaryFallback(string, string) {}

func (nopObserver) ObserveAnalysis(string, int, *domain.AnalysisError, time.Duration) {}
