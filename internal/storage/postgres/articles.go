package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"kidnews/internal/domain"
	"kidnews/internal/storage"
)

const articleColumns = "id, original_url, target_age, original_title, original_content, " +
	"converted_title, converted_content, converted_summary, category, status, " +
	"site_name, image_url, has_read, reactions, is_archived, archived_at, " +
	"parent_id, organization_id, created_at"

// articleRow mirrors the articles table; transforms below map it to and from
// the camelCase domain shape. Adding an Article field means touching the
// row struct and both transforms.
type articleRow struct {
	ID               int64          `db:"id"`
	OriginalURL      string         `db:"original_url"`
	TargetAge        int            `db:"target_age"`
	OriginalTitle    string         `db:"original_title"`
	OriginalContent  string         `db:"original_content"`
	ConvertedTitle   string         `db:"converted_title"`
	ConvertedContent string         `db:"converted_content"`
	ConvertedSummary string         `db:"converted_summary"`
	Category         string         `db:"category"`
	Status           string         `db:"status"`
	SiteName         *string        `db:"site_name"`
	ImageURL         *string        `db:"image_url"`
	HasRead          bool           `db:"has_read"`
	Reactions        pq.StringArray `db:"reactions"`
	IsArchived       bool           `db:"is_archived"`
	ArchivedAt       *time.Time     `db:"archived_at"`
	ParentID         *string        `db:"parent_id"`
	OrganizationID   *string        `db:"organization_id"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (r articleRow) toDomain() domain.Article {
	reactions := []string(r.Reactions)
	if reactions == nil {
		reactions = []string{}
	}
	return domain.Article{
		ID:               r.ID,
		OriginalURL:      r.OriginalURL,
		TargetAge:        r.TargetAge,
		OriginalTitle:    r.OriginalTitle,
		OriginalContent:  r.OriginalContent,
		ConvertedTitle:   r.ConvertedTitle,
		ConvertedContent: r.ConvertedContent,
		ConvertedSummary: r.ConvertedSummary,
		Category:         r.Category,
		Status:           r.Status,
		SiteName:         r.SiteName,
		ImageURL:         r.ImageURL,
		HasRead:          r.HasRead,
		Reactions:        reactions,
		IsArchived:       r.IsArchived,
		ArchivedAt:       r.ArchivedAt,
		ParentID:         r.ParentID,
		OrganizationID:   r.OrganizationID,
		CreatedAt:        r.CreatedAt,
	}
}

func articleValues(a *domain.Article) map[string]interface{} {
	return map[string]interface{}{
		"original_url":      a.OriginalURL,
		"target_age":        a.TargetAge,
		"original_title":    a.OriginalTitle,
		"original_content":  a.OriginalContent,
		"converted_title":   a.ConvertedTitle,
		"converted_content": a.ConvertedContent,
		"converted_summary": a.ConvertedSummary,
		"category":          a.Category,
		"status":            a.Status,
		"site_name":         a.SiteName,
		"image_url":         a.ImageURL,
		"has_read":          a.HasRead,
		"reactions":         pq.StringArray(a.Reactions),
		"is_archived":       a.IsArchived,
		"archived_at":       a.ArchivedAt,
		"parent_id":         a.ParentID,
		"organization_id":   a.OrganizationID,
	}
}

func (s *Store) Articles(ctx context.Context, filter storage.ArticleFilter) ([]domain.Article, error) {
	builder := s.sb.Select(articleColumns).
		From("articles").
		OrderBy("created_at DESC", "id DESC")

	if filter.Category != "" && filter.Category != storage.CategoryAll {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.IsArchived != nil {
		builder = builder.Where(sq.Eq{"is_archived": *filter.IsArchived})
	}
	if filter.ParentID != "" {
		builder = builder.Where(sq.Eq{"parent_id": filter.ParentID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, wrapErr("list articles", err)
	}

	var rows []articleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapErr("list articles", err)
	}

	articles := make([]domain.Article, len(rows))
	for i, r := range rows {
		articles[i] = r.toDomain()
	}
	return articles, nil
}

func (s *Store) ArticleByID(ctx context.Context, id int64) (*domain.Article, error) {
	query, args, err := s.sb.Select(articleColumns).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, wrapErr("get article", err)
	}

	var row articleRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get article", err)
	}

	a := row.toDomain()
	return &a, nil
}

func (s *Store) CreateArticle(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	values := articleValues(a)

	builder := s.sb.Insert("articles").
		SetMap(values).
		Suffix("RETURNING " + articleColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, wrapErr("create article", err)
	}

	var row articleRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, wrapErr("create article", err)
	}

	stored := row.toDomain()
	return &stored, nil
}

func (s *Store) UpdateArticle(ctx context.Context, id int64, upd domain.ArticleUpdate) (*domain.Article, error) {
	values := map[string]interface{}{}
	if upd.ConvertedTitle != nil {
		values["converted_title"] = *upd.ConvertedTitle
	}
	if upd.ConvertedContent != nil {
		values["converted_content"] = *upd.ConvertedContent
	}
	if upd.ConvertedSummary != nil {
		values["converted_summary"] = *upd.ConvertedSummary
	}
	if upd.Category != nil {
		values["category"] = *upd.Category
	}
	if upd.Status != nil {
		values["status"] = *upd.Status
	}
	if upd.HasRead != nil {
		values["has_read"] = *upd.HasRead
	}
	if upd.ArchivedAt != nil {
		values["archived_at"] = *upd.ArchivedAt
	}
	if upd.IsArchived != nil {
		values["is_archived"] = *upd.IsArchived
		if !*upd.IsArchived {
			values["archived_at"] = nil
		}
	}
	if len(values) == 0 {
		return s.ArticleByID(ctx, id)
	}

	query, args, err := s.sb.Update("articles").
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + articleColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("update article", err)
	}

	var row articleRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("update article", err)
	}

	a := row.toDomain()
	return &a, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	query, args, err := s.sb.Delete("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, wrapErr("delete article", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapErr("delete article", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr("delete article", err)
	}
	return affected > 0, nil
}
