// Package memory implements the storage.Store contract with in-process maps.
// It is the zero-configuration fallback provider: construction seeds a few
// demo articles so the application is usable without a database.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"kidnews/internal/domain"
	"kidnews/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	articles      map[int64]*domain.Article
	users         map[string]*domain.User
	reactions     map[string]*domain.Reaction
	questions     map[string]*domain.Question
	invitations   map[string]*domain.Invitation
	organizations map[string]*domain.Organization

	nextArticleID  int64
	nextQuestionID int64
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	s := &Store{
		articles:      make(map[int64]*domain.Article),
		users:         make(map[string]*domain.User),
		reactions:     make(map[string]*domain.Reaction),
		questions:     make(map[string]*domain.Question),
		invitations:   make(map[string]*domain.Invitation),
		organizations: make(map[string]*domain.Organization),
		nextQuestionID: 1,
	}
	s.seed()
	return s
}

func (s *Store) Articles(_ context.Context, filter storage.ArticleFilter) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if !matchesFilter(a, filter) {
			continue
		}
		result = append(result, *cloneArticle(a))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *Store) ArticleByID(_ context.Context, id int64) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	return cloneArticle(a), nil
}

func (s *Store) CreateArticle(_ context.Context, a *domain.Article) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *cloneArticle(a)
	stored.ID = s.nextArticleID
	stored.CreatedAt = time.Now()
	if stored.Reactions == nil {
		stored.Reactions = []string{}
	}
	s.nextArticleID++
	s.articles[stored.ID] = &stored
	return cloneArticle(&stored), nil
}

func (s *Store) UpdateArticle(_ context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	if upd.ConvertedTitle != nil {
		a.ConvertedTitle = *upd.ConvertedTitle
	}
	if upd.ConvertedContent != nil {
		a.ConvertedContent = *upd.ConvertedContent
	}
	if upd.ConvertedSummary != nil {
		a.ConvertedSummary = *upd.ConvertedSummary
	}
	if upd.Category != nil {
		a.Category = *upd.Category
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.HasRead != nil {
		a.HasRead = *upd.HasRead
	}
	if upd.ArchivedAt != nil {
		a.ArchivedAt = upd.ArchivedAt
	}
	if upd.IsArchived != nil {
		a.IsArchived = *upd.IsArchived
		if !a.IsArchived {
			a.ArchivedAt = nil
		}
	}
	return cloneArticle(a), nil
}

func (s *Store) DeleteArticle(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return false, nil
	}
	delete(s.articles, id)
	return true, nil
}

func (s *Store) User(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *Store) Users(_ context.Context, filter storage.UserFilter) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.User, 0)
	for _, u := range s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ParentID != "" && (u.ParentID == nil || *u.ParentID != filter.ParentID) {
			continue
		}
		if filter.OrganizationID != "" && (u.OrganizationID == nil || *u.OrganizationID != filter.OrganizationID) {
			continue
		}
		result = append(result, *u)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *u
	now := time.Now()
	stored.CreatedAt = now
	stored.LastLoginAt = now
	s.users[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if upd.Email != nil {
		u.Email = upd.Email
	}
	if upd.DisplayName != nil {
		u.DisplayName = upd.DisplayName
	}
	if upd.Age != nil {
		u.Age = upd.Age
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.TokensUsed != nil {
		u.TokensUsed = *upd.TokensUsed
	}
	if upd.LastLoginAt != nil {
		u.LastLoginAt = *upd.LastLoginAt
	}
	cp := *u
	return &cp, nil
}

func (s *Store) AddReaction(_ context.Context, articleID int64, userID, reaction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[articleID]
	if !ok {
		return &storage.Error{Op: "add reaction", Err: fmt.Errorf("article %d not found", articleID)}
	}

	key := domain.ReactionID(articleID, userID, reaction)
	if _, ok := s.reactions[key]; ok {
		return nil
	}

	s.reactions[key] = &domain.Reaction{
		ID:        key,
		ArticleID: articleID,
		UserID:    userID,
		Reaction:  reaction,
		CreatedAt: time.Now(),
	}

	if !contains(a.Reactions, reaction) {
		a.Reactions = append(a.Reactions, reaction)
	}
	return nil
}

func (s *Store) RemoveReaction(_ context.Context, articleID int64, userID, reaction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reactions, domain.ReactionID(articleID, userID, reaction))

	// Strip the denormalized tag only once no user holds it anymore.
	for _, r := range s.reactions {
		if r.ArticleID == articleID && r.Reaction == reaction {
			return nil
		}
	}
	if a, ok := s.articles[articleID]; ok {
		a.Reactions = remove(a.Reactions, reaction)
	}
	return nil
}

func (s *Store) Reactions(_ context.Context, articleID int64, userID string) ([]domain.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Reaction, 0)
	for _, r := range s.reactions {
		if r.ArticleID != articleID {
			continue
		}
		if userID != "" && r.UserID != userID {
			continue
		}
		result = append(result, *r)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) CreateQuestion(_ context.Context, q *domain.Question) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *q
	stored.ID = fmt.Sprintf("q-%d", s.nextQuestionID)
	stored.CreatedAt = time.Now()
	s.nextQuestionID++
	s.questions[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (s *Store) Questions(_ context.Context, articleID int64, userID string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Question, 0)
	for _, q := range s.questions {
		if q.ArticleID != articleID {
			continue
		}
		if userID != "" && q.UserID != userID {
			continue
		}
		result = append(result, *q)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) AnswerQuestion(_ context.Context, id, answer string) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	q.ParentAnswer = &answer
	q.Status = domain.QuestionAnswered
	q.AnsweredAt = &now
	cp := *q
	return &cp, nil
}

func (s *Store) CreateInvitation(_ context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *inv
	stored.CreatedAt = time.Now()
	s.invitations[stored.Token] = &stored
	cp := stored
	return &cp, nil
}

func (s *Store) InvitationByToken(_ context.Context, token string) (*domain.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invitations[token]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (s *Store) AcceptInvitation(_ context.Context, token, userID string) (*domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invitations[token]
	if !ok {
		return nil, nil
	}
	now := time.Now()
	inv.Status = domain.InvitationAccepted
	inv.AcceptedBy = &userID
	inv.AcceptedAt = &now
	cp := *inv
	return &cp, nil
}

func (s *Store) ExpireInvitations(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for _, inv := range s.invitations {
		if inv.Status == domain.InvitationPending && inv.ExpiresAt.Before(now) {
			inv.Status = domain.InvitationExpired
			expired++
		}
	}
	return expired, nil
}

func (s *Store) CreateOrganization(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *org
	stored.CreatedAt = time.Now()
	s.organizations[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (s *Store) OrganizationByID(_ context.Context, id string) (*domain.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.organizations[id]
	if !ok {
		return nil, nil
	}
	cp := *org
	return &cp, nil
}

func (s *Store) Organizations(_ context.Context) ([]domain.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Organization, 0, len(s.organizations))
	for _, org := range s.organizations {
		result = append(result, *org)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) Stats(_ context.Context, userID string) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{CategoryCounts: make(map[string]int)}
	for _, a := range s.articles {
		if a.IsArchived {
			continue
		}
		if userID != "" && (a.ParentID == nil || *a.ParentID != userID) {
			continue
		}
		stats.TotalArticles++
		if a.HasRead {
			stats.ReadArticles++
		}
		stats.CategoryCounts[a.Category]++
	}
	if stats.TotalArticles > 0 {
		stats.ReadingRate = int(math.Round(float64(stats.ReadArticles) / float64(stats.TotalArticles) * 100))
	}
	return stats, nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func matchesFilter(a *domain.Article, filter storage.ArticleFilter) bool {
	if filter.Category != "" && filter.Category != storage.CategoryAll && a.Category != filter.Category {
		return false
	}
	if filter.IsArchived != nil && a.IsArchived != *filter.IsArchived {
		return false
	}
	if filter.ParentID != "" && (a.ParentID == nil || *a.ParentID != filter.ParentID) {
		return false
	}
	return true
}

func cloneArticle(a *domain.Article) *domain.Article {
	cp := *a
	cp.Reactions = append([]string(nil), a.Reactions...)
	if cp.Reactions == nil {
		cp.Reactions = []string{}
	}
	return &cp
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	result := list[:0]
	for _, s := range list {
		if s != v {
			result = append(result, s)
		}
	}
	return result
}
