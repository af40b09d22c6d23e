package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/legistra/internal/core/domain"
)

const (
	serverName    = "legistra"
	serverVersion = "1.0.0"
)

// TextAnalyzer is the pipeline entry point used by the tools.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, label, text, modeName string) (*domain.AnalysisOutcome, *domain.AnalysisError)
}

type Handlers struct {
	analyzer    TextAnalyzer
	defaultMode string
}

func NewHandlers(analyzer TextAnalyzer, defaultMode string) *Handlers {
	return &Handlers{analyzer: analyzer, defaultMode: defaultMode}
}

// NewServer registers the analysis tools on a new MCP server.
func NewServer(h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false))

	analyzeTool := mcp.NewTool("analyze_text",
		mcp.WithDescription("Extract legal clauses, classification and risks from contract text."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Contract text to analyze."),
		),
		mcp.WithString("mode",
			mcp.Description("Analysis mode: thorough, multilingual or fast."),
		),
		mcp.WithString("label",
			mcp.Description("Optional name reported as the document id."),
		),
	)
	s.AddTool(analyzeTool, h.AnalyzeText)

	listTool := mcp.NewTool("list_clause_types",
		mcp.WithDescription("List the clause categories the analyzer can detect."),
	)
	s.AddTool(listTool, h.ListClauseTypes)

	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func (h *Handlers) AnalyzeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text must not be empty"), nil
	}
	mode := request.GetString("mode", h.defaultMode)
	label := request.GetString("label", "")

	outcome, failure := h.analyzer.AnalyzeText(ctx, label, text, mode)
	if failure != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s at %s: %s", failure.Kind, failure.Stage, failure.Message)), nil
	}
	return jsonResult(outcome)
}

func (h *Handlers) ListClauseTypes(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := make([]string, 0, len(domain.ClauseTypes))
	for _, clauseType := range domain.ClauseTypes {
		names = append(names, string(clauseType))
	}
	return jsonResult(map[string]any{"clause_types": names})
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
