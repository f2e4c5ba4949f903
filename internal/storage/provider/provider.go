// Package provider selects and fronts the active persistence provider.
// Selection happens once at construction: the hosted postgres backend when
// configured and reachable, otherwise the seeded in-memory store. The
// fallback is silent to callers; it is logged, never returned as an error.
package provider

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"kidnews/internal/config"
	"kidnews/internal/domain"
	"kidnews/internal/storage"
	"kidnews/internal/storage/memory"
	"kidnews/internal/storage/postgres"
)

const (
	NamePostgres = "postgres"
	NameMemory   = "memory"
)

// Provider forwards every storage.Store method to the active provider.
// Callers never learn which provider is behind it except through Name and
// HealthCheck. Construct it once in main and pass it down explicitly.
type Provider struct {
	mu    sync.RWMutex
	name  string
	store storage.Store
}

var _ storage.Store = (*Provider)(nil)

// Open builds the configured provider. Any misconfiguration or connection
// failure falls back to the in-memory store so the application stays usable.
func Open(cfg config.DatabaseConfig, logger *slog.Logger) *Provider {
	if !cfg.Enabled {
		logger.Info("database disabled, using in-memory store")
		return &Provider{name: NameMemory, store: memory.New()}
	}
	if cfg.Host == "" || cfg.DBName == "" {
		logger.Warn("database enabled but connection details missing, falling back to in-memory store",
			"host", cfg.Host,
			"dbname", cfg.DBName,
		)
		return &Provider{name: NameMemory, store: memory.New()}
	}

	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		logger.Warn("database connection failed, falling back to in-memory store", "error", err)
		return &Provider{name: NameMemory, store: memory.New()}
	}

	logger.Info("connected to database", "host", cfg.Host, "dbname", cfg.DBName)
	return &Provider{name: NamePostgres, store: postgres.New(db)}
}

// New fronts an already-constructed store. Used by tests and by callers
// that do their own provider selection.
func New(name string, store storage.Store) *Provider {
	return &Provider{name: name, store: store}
}

// Name reports the active provider.
func (p *Provider) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// Swap replaces the active provider in place. Intended for tests.
func (p *Provider) Swap(name string, store storage.Store) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
	p.store = store
}

// Health is the result of a liveness probe against the active provider.
type Health struct {
	Provider string `json:"provider"`
	Healthy  bool   `json:"healthy"`
	Error    string `json:"error,omitempty"`
}

// HealthCheck probes the active provider. It reports failures in the result
// instead of returning an error.
func (p *Provider) HealthCheck(ctx context.Context) Health {
	name, store := p.active()
	if err := store.Ping(ctx); err != nil {
		return Health{Provider: name, Healthy: false, Error: err.Error()}
	}
	return Health{Provider: name, Healthy: true}
}

func (p *Provider) active() (string, storage.Store) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name, p.store
}

func (p *Provider) Articles(ctx context.Context, filter storage.ArticleFilter) ([]domain.Article, error) {
	_, s := p.active()
	return s.Articles(ctx, filter)
}

func (p *Provider) ArticleByID(ctx context.Context, id int64) (*domain.Article, error) {
	_, s := p.active()
	return s.ArticleByID(ctx, id)
}

func (p *Provider) CreateArticle(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	_, s := p.active()
	return s.CreateArticle(ctx, a)
}

func (p *Provider) UpdateArticle(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
	_, s := p.active()
	return s.UpdateArticle(ctx, id, upd)
}

func (p *Provider) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	_, s := p.active()
	return s.DeleteArticle(ctx, id)
}

func (p *Provider) User(ctx context.Context, id string) (*domain.User, error) {
	_, s := p.active()
	return s.User(ctx, id)
}

func (p *Provider) Users(ctx context.Context, filter storage.UserFilter) ([]domain.User, error) {
	_, s := p.active()
	return s.Users(ctx, filter)
}

func (p *Provider) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	_, s := p.active()
	return s.CreateUser(ctx, u)
}

func (p *Provider) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	_, s := p.active()
	return s.UpdateUser(ctx, id, upd)
}

func (p *Provider) AddReaction(ctx context.Context, articleID int64, userID, reaction string) error {
	_, s := p.active()
	return s.AddReaction(ctx, articleID, userID, reaction)
}

func (p *Provider) RemoveReaction(ctx context.Context, articleID int64, userID, reaction string) error {
	_, s := p.active()
	return s.RemoveReaction(ctx, articleID, userID, reaction)
}

func (p *Provider) Reactions(ctx context.Context, articleID int64, userID string) ([]domain.Reaction, error) {
	_, s := p.active()
	return s.Reactions(ctx, articleID, userID)
}

func (p *Provider) CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	_, s := p.active()
	return s.CreateQuestion(ctx, q)
}

func (p *Provider) Questions(ctx context.Context, articleID int64, userID string) ([]domain.Question, error) {
	_, s := p.active()
	return s.Questions(ctx, articleID, userID)
}

func (p *Provider) AnswerQuestion(ctx context.Context, id, answer string) (*domain.Question, error) {
	_, s := p.active()
	return s.AnswerQuestion(ctx, id, answer)
}

func (p *Provider) CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	_, s := p.active()
	return s.CreateInvitation(ctx, inv)
}

func (p *Provider) InvitationByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	_, s := p.active()
	return s.InvitationByToken(ctx, token)
}

func (p *Provider) AcceptInvitation(ctx context.Context, token, userID string) (*domain.Invitation, error) {
	_, s := p.active()
	return s.AcceptInvitation(ctx, token, userID)
}

func (p *Provider) ExpireInvitations(ctx context.Context, now time.Time) (int, error) {
	_, s := p.active()
	return s.ExpireInvitations(ctx, now)
}

func (p *Provider) CreateOrganization(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	_, s := p.active()
	return s.CreateOrganization(ctx, org)
}

func (p *Provider) OrganizationByID(ctx context.Context, id string) (*domain.Organization, error) {
	_, s := p.active()
	return s.OrganizationByID(ctx, id)
}

func (p *Provider) Organizations(ctx context.Context) ([]domain.Organization, error) {
	_, s := p.active()
	return s.Organizations(ctx)
}

func (p *Provider) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	_, s := p.active()
	return s.Stats(ctx, userID)
}

func (p *Provider) Ping(ctx context.Context) error {
	_, s := p.active()
	return s.Ping(ctx)
}

func (p *Provider) Close() error {
	_, s := p.active()
	return s.Close()
}
