package api

import (
	"net/http"

	"kidnews/internal/domain"
)

func (s *APITestSuite) TestListArticles() {
	rec := s.request(http.MethodGet, "/api/articles", nil)

	s.Equal(http.StatusOK, rec.Code)

	articles := decode[[]domain.Article](s, rec)
	s.Len(articles, 3)
}

func (s *APITestSuite) TestListArticles_CategoryFilter() {
	rec := s.request(http.MethodGet, "/api/articles?category=animals", nil)

	s.Equal(http.StatusOK, rec.Code)

	articles := decode[[]domain.Article](s, rec)
	s.Len(articles, 1)
	s.Equal("animals", articles[0].Category)
}

func (s *APITestSuite) TestListArticles_BadLimit() {
	rec := s.request(http.MethodGet, "/api/articles?limit=abc", nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestListArticles_BadArchivedFlag() {
	rec := s.request(http.MethodGet, "/api/articles?archived=maybe", nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestSubmitArticle() {
	rec := s.request(http.MethodPost, "/api/articles", map[string]any{
		"originalUrl":     "https://example.com/news/comet",
		"targetAge":       8,
		"originalTitle":   "Comet Visible to the Naked Eye This Week",
		"originalContent": "Astronomers say the comet will be visible at dusk. Residents should look west after sunset.",
		"category":        "science",
	})

	s.Equal(http.StatusCreated, rec.Code)

	article := decode[domain.Article](s, rec)
	s.Equal(int64(4), article.ID)
	s.Equal(domain.StatusCompleted, article.Status)
	s.NotEmpty(article.ConvertedContent)
	s.NotEmpty(article.ConvertedSummary)
}

func (s *APITestSuite) TestSubmitArticle_MissingFields() {
	rec := s.request(http.MethodPost, "/api/articles", map[string]any{
		"originalUrl": "https://example.com/news/comet",
		"targetAge":   8,
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestSubmitArticle_BadTargetAge() {
	rec := s.request(http.MethodPost, "/api/articles", map[string]any{
		"originalUrl":     "https://example.com/news/comet",
		"targetAge":       0,
		"originalTitle":   "Title",
		"originalContent": "Content.",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestGetArticle() {
	rec := s.request(http.MethodGet, "/api/articles/1", nil)

	s.Equal(http.StatusOK, rec.Code)

	article := decode[domain.Article](s, rec)
	s.Equal(int64(1), article.ID)
}

func (s *APITestSuite) TestGetArticle_NotFound() {
	rec := s.request(http.MethodGet, "/api/articles/999", nil)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestGetArticle_BadID() {
	rec := s.request(http.MethodGet, "/api/articles/abc", nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestUpdateArticle() {
	rec := s.request(http.MethodPatch, "/api/articles/1", map[string]any{
		"hasRead": true,
	})

	s.Equal(http.StatusOK, rec.Code)

	article := decode[domain.Article](s, rec)
	s.True(article.HasRead)
}

func (s *APITestSuite) TestUpdateArticle_NotFound() {
	rec := s.request(http.MethodPatch, "/api/articles/999", map[string]any{"hasRead": true})

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestDeleteArticle() {
	rec := s.request(http.MethodDelete, "/api/articles/2", nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodDelete, "/api/articles/2", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestArchiveArticle() {
	rec := s.request(http.MethodPost, "/api/articles/1/archive", nil)

	s.Equal(http.StatusOK, rec.Code)

	article := decode[domain.Article](s, rec)
	s.True(article.IsArchived)
	s.NotNil(article.ArchivedAt)
}

func (s *APITestSuite) TestArchiveArticle_NotFound() {
	rec := s.request(http.MethodPost, "/api/articles/999/archive", nil)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestReactions() {
	rec := s.request(http.MethodPost, "/api/articles/1/reactions", map[string]any{
		"userId":   "child-1",
		"reaction": "heart",
	})
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodGet, "/api/articles/1/reactions", nil)
	s.Equal(http.StatusOK, rec.Code)

	reactions := decode[[]domain.Reaction](s, rec)
	s.Len(reactions, 1)
	s.Equal("heart", reactions[0].Reaction)

	rec = s.request(http.MethodDelete, "/api/articles/1/reactions", map[string]any{
		"userId":   "child-1",
		"reaction": "heart",
	})
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodGet, "/api/articles/1/reactions", nil)
	reactions = decode[[]domain.Reaction](s, rec)
	s.Empty(reactions)
}

func (s *APITestSuite) TestAddReaction_MissingFields() {
	rec := s.request(http.MethodPost, "/api/articles/1/reactions", map[string]any{
		"userId": "child-1",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestQuestions() {
	rec := s.request(http.MethodPost, "/api/articles/1/questions", map[string]any{
		"userId":   "child-1",
		"question": "Why is the sky blue?",
	})
	s.Equal(http.StatusCreated, rec.Code)

	question := decode[domain.Question](s, rec)
	s.Equal(domain.QuestionPending, question.Status)

	rec = s.request(http.MethodPost, "/api/questions/"+question.ID+"/answer", map[string]any{
		"answer": "Sunlight scatters in the air.",
	})
	s.Equal(http.StatusOK, rec.Code)

	answered := decode[domain.Question](s, rec)
	s.Equal(domain.QuestionAnswered, answered.Status)
	s.Equal("Sunlight scatters in the air.", *answered.ParentAnswer)

	rec = s.request(http.MethodGet, "/api/articles/1/questions?userId=child-1", nil)
	s.Equal(http.StatusOK, rec.Code)

	questions := decode[[]domain.Question](s, rec)
	s.Len(questions, 1)
}

func (s *APITestSuite) TestAnswerQuestion_NotFound() {
	rec := s.request(http.MethodPost, "/api/questions/q-999/answer", map[string]any{
		"answer": "answer",
	})

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestAnswerQuestion_MissingAnswer() {
	rec := s.request(http.MethodPost, "/api/questions/q-1/answer", map[string]any{})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestStats() {
	rec := s.request(http.MethodPatch, "/api/articles/1", map[string]any{"hasRead": true})
	s.Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/api/stats", nil)
	s.Equal(http.StatusOK, rec.Code)

	stats := decode[domain.Stats](s, rec)
	s.Equal(3, stats.TotalArticles)
	s.Equal(1, stats.ReadArticles)
	s.Equal(33, stats.ReadingRate)
}
