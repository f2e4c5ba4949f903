package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"kidnews/internal/domain"
)

const questionColumns = "id, article_id, user_id, question, parent_answer, status, created_at, answered_at"

type questionRow struct {
	ID           string     `db:"id"`
	ArticleID    int64      `db:"article_id"`
	UserID       string     `db:"user_id"`
	Question     string     `db:"question"`
	ParentAnswer *string    `db:"parent_answer"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	AnsweredAt   *time.Time `db:"answered_at"`
}

func (r questionRow) toDomain() domain.Question {
	return domain.Question{
		ID:           r.ID,
		ArticleID:    r.ArticleID,
		UserID:       r.UserID,
		Question:     r.Question,
		ParentAnswer: r.ParentAnswer,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		AnsweredAt:   r.AnsweredAt,
	}
}

func (s *Store) CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	query, args, err := s.sb.Insert("questions").
		SetMap(map[string]interface{}{
			"article_id": q.ArticleID,
			"user_id":    q.UserID,
			"question":   q.Question,
			"status":     q.Status,
		}).
		Suffix("RETURNING " + questionColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("create question", err)
	}

	var row questionRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, wrapErr("create question", err)
	}

	stored := row.toDomain()
	return &stored, nil
}

func (s *Store) Questions(ctx context.Context, articleID int64, userID string) ([]domain.Question, error) {
	builder := s.sb.Select(questionColumns).
		From("questions").
		Where(sq.Eq{"article_id": articleID}).
		OrderBy("created_at DESC", "id DESC")

	if userID != "" {
		builder = builder.Where(sq.Eq{"user_id": userID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, wrapErr("list questions", err)
	}

	var rows []questionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapErr("list questions", err)
	}

	questions := make([]domain.Question, len(rows))
	for i, r := range rows {
		questions[i] = r.toDomain()
	}
	return questions, nil
}

func (s *Store) AnswerQuestion(ctx context.Context, id, answer string) (*domain.Question, error) {
	query, args, err := s.sb.Update("questions").
		SetMap(map[string]interface{}{
			"parent_answer": answer,
			"status":        domain.QuestionAnswered,
			"answered_at":   time.Now(),
		}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + questionColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("answer question", err)
	}

	var row questionRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("answer question", err)
	}

	q := row.toDomain()
	return &q, nil
}
