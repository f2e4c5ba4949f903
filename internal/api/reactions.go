package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kidnews/internal/domain"
)

type reactionReq struct {
	UserID   string `json:"userId"`
	Reaction string `json:"reaction"`
}

func (s *Server) addReaction(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	var req reactionReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.UserID == "" || req.Reaction == "" {
		return errorJSON(c, http.StatusBadRequest, "userId and reaction are required")
	}

	if err := s.store.AddReaction(c.Request().Context(), id, req.UserID, req.Reaction); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) removeReaction(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	var req reactionReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.UserID == "" || req.Reaction == "" {
		return errorJSON(c, http.StatusBadRequest, "userId and reaction are required")
	}

	if err := s.store.RemoveReaction(c.Request().Context(), id, req.UserID, req.Reaction); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listReactions(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	reactions, err := s.store.Reactions(c.Request().Context(), id, c.QueryParam("userId"))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reactions)
}

type questionReq struct {
	UserID   string `json:"userId"`
	Question string `json:"question"`
}

func (s *Server) createQuestion(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	var req questionReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.UserID == "" || req.Question == "" {
		return errorJSON(c, http.StatusBadRequest, "userId and question are required")
	}

	question, err := s.store.CreateQuestion(c.Request().Context(), &domain.Question{
		ArticleID: id,
		UserID:    req.UserID,
		Question:  req.Question,
		Status:    domain.QuestionPending,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, question)
}

func (s *Server) listQuestions(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid article id")
	}

	questions, err := s.store.Questions(c.Request().Context(), id, c.QueryParam("userId"))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, questions)
}

func (s *Server) answerQuestion(c echo.Context) error {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.Answer == "" {
		return errorJSON(c, http.StatusBadRequest, "answer is required")
	}

	question, err := s.store.AnswerQuestion(c.Request().Context(), c.Param("id"), req.Answer)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if question == nil {
		return errorJSON(c, http.StatusNotFound, "question not found")
	}
	return c.JSON(http.StatusOK, question)
}
