package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kidnews/internal/domain"
	"kidnews/internal/publisher"
)

// ArticleService owns the article submission flow: rewrite the original text
// for the target age, persist the result, and announce it to downstream
// consumers.
type ArticleService struct {
	store     ArticleStore
	rewriter  Rewriter
	fallback  Rewriter
	publisher Publisher
	logger    *slog.Logger
}

// NewArticleService wires the submission flow. publisher may be nil when
// event publishing is not configured; fallback must never fail.
func NewArticleService(
	store ArticleStore,
	rw Rewriter,
	fallback Rewriter,
	pub Publisher,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		store:     store,
		rewriter:  rw,
		fallback:  fallback,
		publisher: pub,
		logger:    logger,
	}
}

// SubmitRequest carries everything a parent provides when sharing an
// article. Original title and content arrive already extracted; this
// service performs no scraping.
type SubmitRequest struct {
	OriginalURL     string  `json:"originalUrl"`
	TargetAge       int     `json:"targetAge"`
	OriginalTitle   string  `json:"originalTitle"`
	OriginalContent string  `json:"originalContent"`
	Category        string  `json:"category"`
	SiteName        *string `json:"siteName,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	ParentID        *string `json:"parentId,omitempty"`
	OrganizationID  *string `json:"organizationId,omitempty"`
}

// Submit rewrites and stores a new article. A rewriter failure is not fatal:
// the deterministic fallback simplifier produces the child-friendly text
// instead and the article is stored with status "fallback" so the rewrite
// can be re-run later.
func (s *ArticleService) Submit(ctx context.Context, req SubmitRequest) (*domain.Article, error) {
	status := domain.StatusCompleted
	result, err := s.rewriter.Rewrite(ctx, req.OriginalTitle, req.OriginalContent, req.TargetAge)
	if err != nil {
		s.logger.Warn("rewrite failed, using fallback simplifier",
			"url", req.OriginalURL,
			"error", err,
		)
		status = domain.StatusFallback
		result, err = s.fallback.Rewrite(ctx, req.OriginalTitle, req.OriginalContent, req.TargetAge)
		if err != nil {
			return nil, fmt.Errorf("fallback rewrite: %w", err)
		}
	}

	article := &domain.Article{
		OriginalURL:      req.OriginalURL,
		TargetAge:        req.TargetAge,
		OriginalTitle:    req.OriginalTitle,
		OriginalContent:  req.OriginalContent,
		ConvertedTitle:   result.Title,
		ConvertedContent: result.Content,
		ConvertedSummary: result.Summary,
		Category:         req.Category,
		Status:           status,
		SiteName:         req.SiteName,
		ImageURL:         req.ImageURL,
		Reactions:        []string{},
		ParentID:         req.ParentID,
		OrganizationID:   req.OrganizationID,
	}

	stored, err := s.store.CreateArticle(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.publish(ctx, publisher.ActionCreated, stored)

	s.logger.Info("article submitted",
		"id", stored.ID,
		"category", stored.Category,
		"status", stored.Status,
	)
	return stored, nil
}

// Archive flags an article as archived and stamps the archive time. Returns
// (nil, nil) when the id is unknown.
func (s *ArticleService) Archive(ctx context.Context, id int64) (*domain.Article, error) {
	archived := true
	now := time.Now()
	updated, err := s.store.UpdateArticle(ctx, id, domain.ArticleUpdate{
		IsArchived: &archived,
		ArchivedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("archive article: %w", err)
	}
	if updated == nil {
		return nil, nil
	}

	s.publish(ctx, publisher.ActionArchived, updated)
	return updated, nil
}

// publish is best-effort: a publishing failure is logged and never fails the
// operation that triggered it.
func (s *ArticleService) publish(ctx context.Context, action string, article *domain.Article) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, action, article); err != nil {
		s.logger.Error("publish article event failed",
			"id", article.ID,
			"action", action,
			"error", err,
		)
	}
}
