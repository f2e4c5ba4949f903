package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kidnews/internal/domain"
	"kidnews/internal/publisher"
	"kidnews/internal/rewriter"
	"kidnews/internal/service/mocks"
)

type ArticleServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	store     *mocks.MockArticleStore
	rewriter  *mocks.MockRewriter
	fallback  *mocks.MockRewriter
	publisher *mocks.MockPublisher

	service *ArticleService
	logger  *slog.Logger
}

func (s *ArticleServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.store = mocks.NewMockArticleStore(s.ctrl)
	s.rewriter = mocks.NewMockRewriter(s.ctrl)
	s.fallback = mocks.NewMockRewriter(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewArticleService(s.store, s.rewriter, s.fallback, s.publisher, s.logger)
}

func (s *ArticleServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestArticleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ArticleServiceTestSuite))
}

func (s *ArticleServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()

	req := SubmitRequest{
		OriginalURL:     "https://example.com/news/eclipse",
		TargetAge:       8,
		OriginalTitle:   "Total Solar Eclipse Captivates Millions",
		OriginalContent: "Observers across the continent witnessed totality for over four minutes.",
		Category:        "science",
	}

	s.rewriter.EXPECT().
		Rewrite(ctx, req.OriginalTitle, req.OriginalContent, 8).
		Return(&rewriter.Result{
			Title:   "The Moon Hid the Sun!",
			Content: "The moon moved in front of the sun and the sky went dark.",
			Summary: "Lots of people watched the moon cover the sun.",
		}, nil)

	s.store.EXPECT().
		CreateArticle(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Article) (*domain.Article, error) {
			s.Equal(domain.StatusCompleted, a.Status)
			s.Equal("The Moon Hid the Sun!", a.ConvertedTitle)
			s.Equal([]string{}, a.Reactions)
			stored := *a
			stored.ID = 42
			return &stored, nil
		})

	s.publisher.EXPECT().
		Publish(ctx, publisher.ActionCreated, gomock.Any()).
		Return(nil)

	article, err := s.service.Submit(ctx, req)

	s.NoError(err)
	s.Equal(int64(42), article.ID)
	s.Equal(domain.StatusCompleted, article.Status)
}

func (s *ArticleServiceTestSuite) TestSubmit_RewriterFailureUsesFallback() {
	ctx := context.Background()

	req := SubmitRequest{
		OriginalURL:     "https://example.com/news/volcano",
		TargetAge:       10,
		OriginalTitle:   "Volcano Erupts on Remote Island",
		OriginalContent: "Authorities evacuated residents as lava approached the coastal villages.",
		Category:        "nature",
	}

	s.rewriter.EXPECT().
		Rewrite(ctx, req.OriginalTitle, req.OriginalContent, 10).
		Return(nil, errors.New("upstream timeout"))

	s.fallback.EXPECT().
		Rewrite(ctx, req.OriginalTitle, req.OriginalContent, 10).
		Return(&rewriter.Result{
			Title:   "Volcano Erupts on Remote Island",
			Content: "People moved away as hot lava came near the villages.",
			Summary: "A volcano erupted and people moved to safety.",
		}, nil)

	s.store.EXPECT().
		CreateArticle(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Article) (*domain.Article, error) {
			s.Equal(domain.StatusFallback, a.Status)
			stored := *a
			stored.ID = 7
			return &stored, nil
		})

	s.publisher.EXPECT().
		Publish(ctx, publisher.ActionCreated, gomock.Any()).
		Return(nil)

	article, err := s.service.Submit(ctx, req)

	s.NoError(err)
	s.Equal(domain.StatusFallback, article.Status)
}

func (s *ArticleServiceTestSuite) TestSubmit_StoreError() {
	ctx := context.Background()

	s.rewriter.EXPECT().
		Rewrite(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&rewriter.Result{Title: "t", Content: "c", Summary: "s"}, nil)

	s.store.EXPECT().
		CreateArticle(ctx, gomock.Any()).
		Return(nil, errors.New("connection reset"))

	article, err := s.service.Submit(ctx, SubmitRequest{
		OriginalURL:     "https://example.com/news/x",
		TargetAge:       8,
		OriginalTitle:   "Title",
		OriginalContent: "Content",
	})

	s.Error(err)
	s.Nil(article)
	s.Contains(err.Error(), "create article")
}

func (s *ArticleServiceTestSuite) TestSubmit_PublishErrorIsNotFatal() {
	ctx := context.Background()

	s.rewriter.EXPECT().
		Rewrite(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&rewriter.Result{Title: "t", Content: "c", Summary: "s"}, nil)

	s.store.EXPECT().
		CreateArticle(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Article) (*domain.Article, error) {
			stored := *a
			stored.ID = 9
			return &stored, nil
		})

	s.publisher.EXPECT().
		Publish(ctx, publisher.ActionCreated, gomock.Any()).
		Return(errors.New("channel closed"))

	article, err := s.service.Submit(ctx, SubmitRequest{
		OriginalURL:     "https://example.com/news/y",
		TargetAge:       6,
		OriginalTitle:   "Title",
		OriginalContent: "Content",
	})

	s.NoError(err)
	s.Equal(int64(9), article.ID)
}

func (s *ArticleServiceTestSuite) TestSubmit_PublisherNil() {
	ctx := context.Background()

	service := NewArticleService(s.store, s.rewriter, s.fallback, nil, s.logger)

	s.rewriter.EXPECT().
		Rewrite(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&rewriter.Result{Title: "t", Content: "c", Summary: "s"}, nil)

	s.store.EXPECT().
		CreateArticle(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Article) (*domain.Article, error) {
			stored := *a
			stored.ID = 11
			return &stored, nil
		})

	article, err := service.Submit(ctx, SubmitRequest{
		OriginalURL:     "https://example.com/news/z",
		TargetAge:       8,
		OriginalTitle:   "Title",
		OriginalContent: "Content",
	})

	s.NoError(err)
	s.Equal(int64(11), article.ID)
}

func (s *ArticleServiceTestSuite) TestArchive() {
	ctx := context.Background()

	s.store.EXPECT().
		UpdateArticle(ctx, int64(5), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
			s.True(*upd.IsArchived)
			s.NotNil(upd.ArchivedAt)
			return &domain.Article{ID: id, IsArchived: true, ArchivedAt: upd.ArchivedAt}, nil
		})

	s.publisher.EXPECT().
		Publish(ctx, publisher.ActionArchived, gomock.Any()).
		Return(nil)

	article, err := s.service.Archive(ctx, 5)

	s.NoError(err)
	s.True(article.IsArchived)
	s.NotNil(article.ArchivedAt)
}

func (s *ArticleServiceTestSuite) TestArchive_NotFound() {
	ctx := context.Background()

	s.store.EXPECT().
		UpdateArticle(ctx, int64(404), gomock.Any()).
		Return(nil, nil)

	article, err := s.service.Archive(ctx, 404)

	s.NoError(err)
	s.Nil(article)
}
