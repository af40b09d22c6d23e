package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/legistra/internal/core/ports"
	"github.com/kirillkom/legistra/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, timeout time.Duration, executor *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

// Loader resolves model names against the ollama server.
type Loader struct {
	client *Client
}

func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

func (l *Loader) Load(ctx context.Context, modelID string) (ports.Summarizer, error) {
	modelID = strings.TrimSpace(modelID)
	if modelID == "" {
		return nil, errors.New("empty model id")
	}

	var details json.RawMessage
	if err := l.client.call(ctx, "/api/show", map[string]any{"model": modelID}, &details, "show"); err != nil {
		return nil, err
	}
	return &Summarizer{client: l.client, model: modelID}, nil
}

// Summarizer generates abstractive summaries with one model.
type Summarizer struct {
	client *Client
	model  string
}

func (s *Summarizer) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	request := map[string]any{
		"model":  s.model,
		"prompt": buildSummaryPrompt(text, maxLength, minLength),
		"stream": false,
		"options": map[string]any{
			"temperature": 0,
			"num_predict": predictBudget(maxLength),
		},
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := s.client.call(ctx, "/api/generate", request, &response, "generate"); err != nil {
		return "", err
	}
	return cleanSummary(response.Response), nil
}

func (c *Client) call(ctx context.Context, path string, payload any, out any, operation string) error {
	_, err := resilience.Call(ctx, c.executor, "ollama."+operation, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.postJSON(ctx, path, payload, out, operation)
	}, classifyOllamaError)
	return resilience.WrapTemporary("ollama "+operation, err, classifyOllamaError)
}

// predictBudget converts a word bound to a generation token cap.
func predictBudget(maxLength int) int {
	if maxLength <= 0 {
		return 256
	}
	return maxLength * 2
}

func cleanSummary(raw string) string {
	out := strings.TrimSpace(raw)
	for _, prefix := range []string{"Summary:", "summary:"} {
		out = strings.TrimSpace(strings.TrimPrefix(out, prefix))
	}
	return strings.Join(strings.Fields(out), " ")
}
