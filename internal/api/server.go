// Package api exposes the application over HTTP. Handlers trust
// caller-supplied user ids; authentication lives in front of this service.
package api

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kidnews/internal/service"
	"kidnews/internal/storage/provider"
)

type Server struct {
	store         *provider.Provider
	articles      *service.ArticleService
	invitationTTL time.Duration
	logger        *slog.Logger
}

func NewServer(store *provider.Provider, articles *service.ArticleService, invitationTTL time.Duration, logger *slog.Logger) *Server {
	return &Server{
		store:         store,
		articles:      articles,
		invitationTTL: invitationTTL,
		logger:        logger,
	}
}

// Register mounts all routes on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.health)

	api := e.Group("/api")

	api.GET("/articles", s.listArticles)
	api.POST("/articles", s.submitArticle)
	api.GET("/articles/:id", s.getArticle)
	api.PATCH("/articles/:id", s.updateArticle)
	api.DELETE("/articles/:id", s.deleteArticle)
	api.POST("/articles/:id/archive", s.archiveArticle)

	api.POST("/articles/:id/reactions", s.addReaction)
	api.DELETE("/articles/:id/reactions", s.removeReaction)
	api.GET("/articles/:id/reactions", s.listReactions)

	api.POST("/articles/:id/questions", s.createQuestion)
	api.GET("/articles/:id/questions", s.listQuestions)
	api.POST("/questions/:id/answer", s.answerQuestion)

	api.POST("/users", s.createUser)
	api.GET("/users", s.listUsers)
	api.GET("/users/:id", s.getUser)
	api.PATCH("/users/:id", s.updateUser)

	api.POST("/invitations", s.createInvitation)
	api.GET("/invitations/:token", s.getInvitation)
	api.POST("/invitations/:token/accept", s.acceptInvitation)

	api.POST("/organizations", s.createOrganization)
	api.GET("/organizations", s.listOrganizations)
	api.GET("/organizations/:id", s.getOrganization)

	api.GET("/stats", s.getStats)
}

func (s *Server) health(c echo.Context) error {
	health := s.store.HealthCheck(c.Request().Context())
	status := http.StatusOK
	if !health.Healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func newID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
