package rewriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kidnews/internal/config"
)

// Markers the model is instructed to emit; parseMarkers splits on them.
const (
	markerTitle   = "[TITLE]"
	markerContent = "[CONTENT]"
	markerSummary = "[SUMMARY]"
)

// OpenAI rewrites articles through an OpenAI-compatible chat completions API.
type OpenAI struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

var _ Rewriter = (*OpenAI)(nil)

func NewOpenAI(cfg config.RewriterConfig) *OpenAI {
	return &OpenAI{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *OpenAI) Rewrite(ctx context.Context, title, content string, targetAge int) (*Result, error) {
	if c.endpoint == "" || c.apiKey == "" {
		return nil, fmt.Errorf("rewriter misconfigured: endpoint or api key missing")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": renderPrompt(title, content, targetAge)},
		},
		"temperature": 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call rewriter api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("rewriter api %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("rewriter api returned no choices")
	}

	return parseMarkers(out.Choices[0].Message.Content)
}

const systemPrompt = "You rewrite news articles for children. Keep every fact from the " +
	"original, use short sentences and simple everyday words appropriate for " +
	"the requested age, and never add information that is not in the article."

func renderPrompt(title, content string, targetAge int) string {
	return fmt.Sprintf(`Rewrite the following news article for a %d-year-old reader.
Reply with exactly three sections delimited by these markers, nothing else:
[TITLE] the rewritten headline
[CONTENT] the rewritten article
[SUMMARY] one or two sentences a child could repeat

Original title: %s

Original article:
%s`, targetAge, title, content)
}

// parseMarkers extracts the three marker-delimited sections. It tolerates
// leading chatter before the first marker but requires all three markers in
// order with non-empty title and content.
func parseMarkers(raw string) (*Result, error) {
	titleIdx := strings.Index(raw, markerTitle)
	contentIdx := strings.Index(raw, markerContent)
	summaryIdx := strings.Index(raw, markerSummary)

	if titleIdx < 0 || contentIdx < 0 || summaryIdx < 0 {
		return nil, fmt.Errorf("response missing markers")
	}
	if !(titleIdx < contentIdx && contentIdx < summaryIdx) {
		return nil, fmt.Errorf("response markers out of order")
	}

	result := &Result{
		Title:   strings.TrimSpace(raw[titleIdx+len(markerTitle) : contentIdx]),
		Content: strings.TrimSpace(raw[contentIdx+len(markerContent) : summaryIdx]),
		Summary: strings.TrimSpace(raw[summaryIdx+len(markerSummary):]),
	}
	if result.Title == "" || result.Content == "" {
		return nil, fmt.Errorf("response markers empty")
	}
	return result, nil
}
