package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/legistra/internal/core/clauses"
	"github.com/kirillkom/legistra/internal/core/domain"
)

const (
	extractiveModel  = "extractive"
	unavailableModel = "unavailable"
)

type summaryResult struct {
	text    string
	model   string
	warning *domain.AnalysisError
}

func (p *pipeline) summarize(ctx context.Context, mode Mode, documentID, text, language string) summaryResult {
	settings := mode.Summarizer
	if settings.Strategy == SummaryExtractive {
		return summaryResult{text: clauses.ExtractiveSummary(text), model: extractiveModel}
	}

	primary := settings.modelFor(language)
	if strings.TrimSpace(text) == "" {
		return summaryResult{model: primary}
	}

	input := text
	if p.truncator != nil && settings.MaxInputTokens > 0 {
		input = p.truncator.Truncate(text, settings.MaxInputTokens)
	}

	summary, err := p.summarizeWith(ctx, primary, input, settings.Bounds)
	if err == nil {
		return summaryResult{text: summary, model: primary}
	}
	p.logger.Warn("summarizer_fallback",
		"document_id", documentID,
		"mode", mode.Name,
		"model", primary,
		"fallback_model", settings.FallbackModel,
		"error", err,
	)
	p.observer.ObserveSummaryFallback(mode.Name, "primary_failed")

	if settings.FallbackModel != "" && settings.FallbackModel != primary {
		summary, fallbackErr := p.summarizeWith(ctx, settings.FallbackModel, input, settings.FallbackBounds)
		if fallbackErr == nil {
			return summaryResult{text: summary, model: settings.FallbackModel}
		}
		err = errors.Join(err, fallbackErr)
	}

	p.observer.ObserveSummaryFallback(mode.Name, "degraded")
	wrapped := domain.WrapError(domain.ErrSummarization, "summarize document", err)
	p.logger.Error("summary_degraded", "document_id", documentID, "mode", mode.Name, "error", wrapped)
	return summaryResult{
		text:    fmt.Sprintf("Summary unavailable: %v", err),
		model:   unavailableModel,
		warning: domain.NewAnalysisError(domain.KindSummarizationFailure, documentID, domain.StageSummarizing, wrapped),
	}
}

func (p *pipeline) summarizeWith(ctx context.Context, modelID, text string, bounds SummaryBounds) (string, error) {
	if modelID == "" {
		return "", errors.New("no summarization model configured")
	}
	model, err := p.models.GetOrLoad(ctx, modelID)
	if err != nil {
		return "", err
	}
	summary, err := model.Summarize(ctx, text, bounds.MaxLength, bounds.MinLength)
	if err != nil {
		return "", fmt.Errorf("summarize with %s: %w", modelID, err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("summarize with %s: empty summary", modelID)
	}
	return summary, nil
}
