package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kidnews/internal/domain"
	"kidnews/internal/service"
	"kidnews/internal/storage"
)

func (s *Server) listArticles(c echo.Context) error {
	filter := storage.ArticleFilter{
		Category: c.QueryParam("category"),
		ParentID: c.QueryParam("parentId"),
	}

	if v := c.QueryParam("archived"); v != "" {
		archived, err := strconv.ParseBool(v)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "archived must be a boolean")
		}
		filter.IsArchived = &archived
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return errorJSON(c, http.StatusBadRequest, "limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	articles, err := s.store.Articles(c.Request().Context(), filter)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, articles)
}

func (s *Server) submitArticle(c echo.Context) error {
	var req service.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.OriginalURL == "" || req.OriginalTitle == "" || req.OriginalContent == "" {
		return errorJSON(c, http.StatusBadRequest, "originalUrl, originalTitle and originalContent are required")
	}
	if req.TargetAge <= 0 {
		return errorJSON(c, http.StatusBadRequest, "targetAge must be positive")
	}

	article, err := s.articles.Submit(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, article)
}

func (s *Server) getArticle(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	article, err := s.store.ArticleByID(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if article == nil {
		return errorJSON(c, http.StatusNotFound, "article not found")
	}
	return c.JSON(http.StatusOK, article)
}

func (s *Server) updateArticle(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	var upd domain.ArticleUpdate
	if err := c.Bind(&upd); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}

	article, err := s.store.UpdateArticle(c.Request().Context(), id, upd)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if article == nil {
		return errorJSON(c, http.StatusNotFound, "article not found")
	}
	return c.JSON(http.StatusOK, article)
}

func (s *Server) deleteArticle(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	removed, err := s.store.DeleteArticle(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if !removed {
		return errorJSON(c, http.StatusNotFound, "article not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) archiveArticle(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	article, err := s.articles.Archive(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if article == nil {
		return errorJSON(c, http.StatusNotFound, "article not found")
	}
	return c.JSON(http.StatusOK, article)
}

func (s *Server) getStats(c echo.Context) error {
	stats, err := s.store.Stats(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func articleID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
