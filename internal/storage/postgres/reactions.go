package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"kidnews/internal/domain"
)

type reactionRow struct {
	ID        string    `db:"id"`
	ArticleID int64     `db:"article_id"`
	UserID    string    `db:"user_id"`
	Reaction  string    `db:"reaction"`
	CreatedAt time.Time `db:"created_at"`
}

func (r reactionRow) toDomain() domain.Reaction {
	return domain.Reaction{
		ID:        r.ID,
		ArticleID: r.ArticleID,
		UserID:    r.UserID,
		Reaction:  r.Reaction,
		CreatedAt: r.CreatedAt,
	}
}

// AddReaction ensures the (article, user, reaction) triple exists. The
// lookup-then-insert has a race window, so a unique violation from the
// backend is treated as success. Both writes share one transaction.
func (s *Store) AddReaction(ctx context.Context, articleID int64, userID, reaction string) error {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM article_reactions WHERE article_id = $1 AND user_id = $2 AND reaction = $3)",
		articleID, userID, reaction,
	)
	if err != nil {
		return wrapErr("add reaction", err)
	}
	if exists {
		return nil
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		ex := s.executor(txCtx)

		_, err := ex.ExecContext(txCtx,
			"INSERT INTO article_reactions (id, article_id, user_id, reaction) VALUES ($1, $2, $3, $4)",
			domain.ReactionID(articleID, userID, reaction), articleID, userID, reaction,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return nil
			}
			return err
		}

		_, err = ex.ExecContext(txCtx,
			"UPDATE articles SET reactions = array_append(reactions, $1) WHERE id = $2 AND NOT ($1 = ANY(reactions))",
			reaction, articleID,
		)
		return err
	})
	if err != nil {
		return wrapErr("add reaction", err)
	}
	return nil
}

// RemoveReaction deletes the triple and strips the denormalized tag once no
// other user holds the same reaction on the article.
func (s *Store) RemoveReaction(ctx context.Context, articleID int64, userID, reaction string) error {
	err := s.withTx(ctx, func(txCtx context.Context) error {
		ex := s.executor(txCtx)

		_, err := ex.ExecContext(txCtx,
			"DELETE FROM article_reactions WHERE article_id = $1 AND user_id = $2 AND reaction = $3",
			articleID, userID, reaction,
		)
		if err != nil {
			return err
		}

		var remaining int
		err = sqlx.GetContext(txCtx, ex, &remaining,
			"SELECT COUNT(*) FROM article_reactions WHERE article_id = $1 AND reaction = $2",
			articleID, reaction,
		)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		_, err = ex.ExecContext(txCtx,
			"UPDATE articles SET reactions = array_remove(reactions, $1) WHERE id = $2",
			reaction, articleID,
		)
		return err
	})
	if err != nil {
		return wrapErr("remove reaction", err)
	}
	return nil
}

func (s *Store) Reactions(ctx context.Context, articleID int64, userID string) ([]domain.Reaction, error) {
	builder := s.sb.Select("id, article_id, user_id, reaction, created_at").
		From("article_reactions").
		Where(sq.Eq{"article_id": articleID}).
		OrderBy("created_at ASC", "id ASC")

	if userID != "" {
		builder = builder.Where(sq.Eq{"user_id": userID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, wrapErr("list reactions", err)
	}

	var rows []reactionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapErr("list reactions", err)
	}

	reactions := make([]domain.Reaction, len(rows))
	for i, r := range rows {
		reactions[i] = r.toDomain()
	}
	return reactions, nil
}
