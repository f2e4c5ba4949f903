package storage

import (
	"context"
	"time"

	"kidnews/internal/domain"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// ArticleFilter narrows article listings. Zero values mean "no filter";
// IsArchived is a pointer so "only archived" and "only live" are both
// expressible.
type ArticleFilter struct {
	Category   string
	IsArchived *bool
	ParentID   string
	Limit      int
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role           string
	ParentID       string
	OrganizationID string
}

// Store is the persistence contract shared by every provider. All methods
// take a context and return explicit errors; backend failures are wrapped in
// *Error. Single-entity lookups and updates signal "no such record" with a
// (nil, nil) return, never an error, so callers can branch on presence.
type Store interface {
	// Articles returns articles newest-created-first. The category filter is
	// an exact match ("" or "all" disables it); Limit truncates after sorting.
	Articles(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	ArticleByID(ctx context.Context, id int64) (*domain.Article, error)
	// CreateArticle assigns a fresh id and creation timestamp and returns the
	// stored article.
	CreateArticle(ctx context.Context, a *domain.Article) (*domain.Article, error)
	// UpdateArticle merges the patch onto the existing record. It returns
	// (nil, nil) when the id is unknown and never creates.
	UpdateArticle(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id int64) (bool, error)

	User(ctx context.Context, id string) (*domain.User, error)
	Users(ctx context.Context, filter UserFilter) ([]domain.User, error)
	// CreateUser assigns CreatedAt and LastLoginAt.
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error)

	// AddReaction is idempotent: if the (article, user, reaction) triple
	// already exists it succeeds without duplicating. Otherwise it inserts
	// the reaction record and appends the tag to the article's denormalized
	// reactions list if absent, as one atomic unit. It fails when the
	// article does not exist.
	AddReaction(ctx context.Context, articleID int64, userID, reaction string) error
	// RemoveReaction deletes the record and strips the tag from the
	// article's denormalized list when no other user still holds it.
	RemoveReaction(ctx context.Context, articleID int64, userID, reaction string) error
	// Reactions lists reactions on an article; userID "" means all users.
	Reactions(ctx context.Context, articleID int64, userID string) ([]domain.Reaction, error)

	// CreateQuestion assigns an id and CreatedAt; status is stored as
	// supplied by the caller.
	CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error)
	// Questions lists questions on an article newest-first; userID "" means
	// all users.
	Questions(ctx context.Context, articleID int64, userID string) ([]domain.Question, error)
	// AnswerQuestion sets the answer, status "answered" and AnsweredAt.
	// Calling it again overwrites the previous answer. Returns (nil, nil)
	// when the id is unknown.
	AnswerQuestion(ctx context.Context, id, answer string) (*domain.Question, error)

	CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error)
	InvitationByToken(ctx context.Context, token string) (*domain.Invitation, error)
	// AcceptInvitation transitions a pending invitation to accepted and
	// records the accepting user. Returns (nil, nil) for unknown tokens.
	AcceptInvitation(ctx context.Context, token, userID string) (*domain.Invitation, error)
	// ExpireInvitations marks pending invitations whose expiry is before now
	// as expired and reports how many were swept.
	ExpireInvitations(ctx context.Context, now time.Time) (int, error)

	CreateOrganization(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	OrganizationByID(ctx context.Context, id string) (*domain.Organization, error)
	Organizations(ctx context.Context) ([]domain.Organization, error)

	// Stats aggregates over non-archived articles. A non-empty userID scopes
	// the aggregate to articles owned by that parent; "" means global.
	Stats(ctx context.Context, userID string) (*domain.Stats, error)

	// Ping is a lightweight liveness probe.
	Ping(ctx context.Context) error
	Close() error
}
