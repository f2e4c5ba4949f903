package rewriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kidnews/internal/config"
)

type OpenAITestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *OpenAITestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestOpenAITestSuite(t *testing.T) {
	suite.Run(t, new(OpenAITestSuite))
}

func (s *OpenAITestSuite) newClient(endpoint string) *OpenAI {
	return NewOpenAI(config.RewriterConfig{
		Endpoint: endpoint,
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
		Timeout:  5 * time.Second,
	})
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
}

func (s *OpenAITestSuite) TestRewrite_Success() {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		s.NoError(json.NewDecoder(r.Body).Decode(&gotBody))

		s.NoError(json.NewEncoder(w).Encode(chatResponse(
			"[TITLE] A Big Storm Came to Town\n" +
				"[CONTENT] A strong storm blew through the town last night. Nobody was hurt.\n" +
				"[SUMMARY] A storm hit the town but everyone is safe.",
		)))
	}))
	defer server.Close()

	result, err := s.newClient(server.URL).Rewrite(s.ctx, "Severe Storm Strikes Region", "A severe storm caused damage overnight.", 8)

	s.NoError(err)
	s.Equal("/v1/chat/completions", gotPath)
	s.Equal("Bearer test-key", gotAuth)
	s.Equal("gpt-4o-mini", gotBody["model"])
	s.Equal("A Big Storm Came to Town", result.Title)
	s.Equal("A strong storm blew through the town last night. Nobody was hurt.", result.Content)
	s.Equal("A storm hit the town but everyone is safe.", result.Summary)
}

func (s *OpenAITestSuite) TestRewrite_APIError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	result, err := s.newClient(server.URL).Rewrite(s.ctx, "t", "c", 8)

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "429")
}

func (s *OpenAITestSuite) TestRewrite_NoChoices() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.NoError(json.NewEncoder(w).Encode(map[string]any{"choices": []any{}}))
	}))
	defer server.Close()

	result, err := s.newClient(server.URL).Rewrite(s.ctx, "t", "c", 8)

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "no choices")
}

func (s *OpenAITestSuite) TestRewrite_Misconfigured() {
	client := NewOpenAI(config.RewriterConfig{Model: "gpt-4o-mini", Timeout: time.Second})

	result, err := client.Rewrite(s.ctx, "t", "c", 8)

	s.Error(err)
	s.Nil(result)
}

func (s *OpenAITestSuite) TestParseMarkers_ToleratesLeadingChatter() {
	result, err := parseMarkers("Sure, here you go!\n[TITLE] Hello\n[CONTENT] World\n[SUMMARY] Hi")

	s.NoError(err)
	s.Equal("Hello", result.Title)
	s.Equal("World", result.Content)
	s.Equal("Hi", result.Summary)
}

func (s *OpenAITestSuite) TestParseMarkers_MissingMarker() {
	result, err := parseMarkers("[TITLE] Hello\n[CONTENT] World")

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "missing markers")
}

func (s *OpenAITestSuite) TestParseMarkers_OutOfOrder() {
	result, err := parseMarkers("[CONTENT] World\n[TITLE] Hello\n[SUMMARY] Hi")

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "out of order")
}

func (s *OpenAITestSuite) TestParseMarkers_EmptyTitle() {
	result, err := parseMarkers("[TITLE]\n[CONTENT] World\n[SUMMARY] Hi")

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "empty")
}

func (s *OpenAITestSuite) TestParseMarkers_EmptySummaryAllowed() {
	result, err := parseMarkers("[TITLE] Hello\n[CONTENT] World\n[SUMMARY]")

	s.NoError(err)
	s.Equal("", result.Summary)
}
