package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"kidnews/internal/domain"
	"kidnews/internal/rewriter"
)

type ArticleStore interface {
	CreateArticle(ctx context.Context, a *domain.Article) (*domain.Article, error)
	UpdateArticle(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error)
}

type Rewriter interface {
	Rewrite(ctx context.Context, title, content string, targetAge int) (*rewriter.Result, error)
}

type Publisher interface {
	Publish(ctx context.Context, action string, article *domain.Article) error
	Close() error
}
