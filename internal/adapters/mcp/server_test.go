package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kirillkom/legistra/internal/core/domain"
)

type analyzerFake struct {
	failure   *domain.AnalysisError
	lastMode  string
	lastLabel string
}

func (f *analyzerFake) AnalyzeText(_ context.Context, label, text, mode string) (*domain.AnalysisOutcome, *domain.AnalysisError) {
	f.lastMode = mode
	f.lastLabel = label
	if f.failure != nil {
		return nil, f.failure
	}
	return &domain.AnalysisOutcome{Result: domain.AnalysisResult{
		DocumentID: "inline",
		Summary:    text[:5],
		Clauses:    []domain.Clause{{Type: domain.ClauseIndemnity, Heading: "Indemnification"}},
	}}, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestAnalyzeTextUsesDefaultMode(t *testing.T) {
	fake := &analyzerFake{}
	h := NewHandlers(fake, "fast")

	result, err := h.AnalyzeText(context.Background(), callRequest(map[string]any{"text": "Indemnification: supplier shall indemnify."}))
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if fake.lastMode != "fast" {
		t.Fatalf("expected default mode, got %q", fake.lastMode)
	}

	var outcome domain.AnalysisOutcome
	if err := json.Unmarshal([]byte(resultText(t, result)), &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if len(outcome.Result.Clauses) != 1 || outcome.Result.Clauses[0].Type != domain.ClauseIndemnity {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestAnalyzeTextPassesModeAndLabel(t *testing.T) {
	fake := &analyzerFake{}
	h := NewHandlers(fake, "fast")

	if _, err := h.AnalyzeText(context.Background(), callRequest(map[string]any{
		"text": "Termination of Agreement", "mode": "thorough", "label": "msa.pdf",
	})); err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if fake.lastMode != "thorough" || fake.lastLabel != "msa.pdf" {
		t.Fatalf("unexpected arguments: mode=%q label=%q", fake.lastMode, fake.lastLabel)
	}
}

func TestAnalyzeTextRequiresText(t *testing.T) {
	h := NewHandlers(&analyzerFake{}, "fast")

	for _, args := range []map[string]any{{}, {"text": "   "}} {
		result, err := h.AnalyzeText(context.Background(), callRequest(args))
		if err != nil {
			t.Fatalf("AnalyzeText() error = %v", err)
		}
		if !result.IsError {
			t.Fatalf("expected tool error for %v", args)
		}
	}
}

func TestAnalyzeTextReportsFailure(t *testing.T) {
	fake := &analyzerFake{failure: domain.NewAnalysisError(
		domain.KindCriticalFailure, "inline", domain.StagePreprocessing,
		domain.WrapError(domain.ErrInvalidInput, "resolve mode", errors.New("unknown analysis mode exhaustive")),
	)}
	h := NewHandlers(fake, "fast")

	result, err := h.AnalyzeText(context.Background(), callRequest(map[string]any{"text": "text", "mode": "exhaustive"}))
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "critical_failure") {
		t.Fatalf("expected critical failure tool error")
	}
}

func TestListClauseTypes(t *testing.T) {
	h := NewHandlers(&analyzerFake{}, "fast")

	result, err := h.ListClauseTypes(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("ListClauseTypes() error = %v", err)
	}
	var body struct {
		ClauseTypes []string `json:"clause_types"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.ClauseTypes) != len(domain.ClauseTypes) || body.ClauseTypes[0] != "confidentiality" {
		t.Fatalf("unexpected clause types: %v", body.ClauseTypes)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	if NewServer(NewHandlers(&analyzerFake{}, "fast")) == nil {
		t.Fatalf("expected server")
	}
}
