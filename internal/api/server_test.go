package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"kidnews/internal/rewriter"
	"kidnews/internal/service"
	"kidnews/internal/storage/memory"
	"kidnews/internal/storage/provider"
)

type APITestSuite struct {
	suite.Suite
	e   *echo.Echo
	mem *memory.Store
}

func (s *APITestSuite) SetupTest() {
	s.mem = memory.New()
	store := provider.New(provider.NameMemory, s.mem)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fallback := rewriter.NewFallback()
	articles := service.NewArticleService(store, fallback, fallback, nil, logger)

	s.e = echo.New()
	NewServer(store, articles, time.Hour, logger).Register(s.e)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *APITestSuite, rec *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *APITestSuite) TestHealth() {
	rec := s.request(http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, rec.Code)

	health := decode[provider.Health](s, rec)
	s.True(health.Healthy)
	s.Equal(provider.NameMemory, health.Provider)
}
