package postgres

import (
	"context"
	"math"

	sq "github.com/Masterminds/squirrel"

	"kidnews/internal/domain"
)

// Stats aggregates over non-archived articles; a non-empty userID scopes the
// aggregate to articles owned by that parent.
func (s *Store) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	totalsBuilder := s.sb.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE has_read) AS read",
	).
		From("articles").
		Where(sq.Eq{"is_archived": false})

	if userID != "" {
		totalsBuilder = totalsBuilder.Where(sq.Eq{"parent_id": userID})
	}

	query, args, err := totalsBuilder.ToSql()
	if err != nil {
		return nil, wrapErr("stats", err)
	}

	var totals struct {
		Total int `db:"total"`
		Read  int `db:"read"`
	}
	if err := s.db.GetContext(ctx, &totals, query, args...); err != nil {
		return nil, wrapErr("stats", err)
	}

	categoryBuilder := s.sb.Select("category", "COUNT(*) AS count").
		From("articles").
		Where(sq.Eq{"is_archived": false}).
		GroupBy("category")

	if userID != "" {
		categoryBuilder = categoryBuilder.Where(sq.Eq{"parent_id": userID})
	}

	query, args, err = categoryBuilder.ToSql()
	if err != nil {
		return nil, wrapErr("stats", err)
	}

	var categories []struct {
		Category string `db:"category"`
		Count    int    `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, wrapErr("stats", err)
	}

	stats := &domain.Stats{
		TotalArticles:  totals.Total,
		ReadArticles:   totals.Read,
		CategoryCounts: make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		stats.CategoryCounts[c.Category] = c.Count
	}
	if stats.TotalArticles > 0 {
		stats.ReadingRate = int(math.Round(float64(stats.ReadArticles) / float64(stats.TotalArticles) * 100))
	}
	return stats, nil
}
