// Package postgres implements the storage.Store contract against a hosted
// relational backend. Queries are built with squirrel and executed through
// sqlx; row structs translate between the backend's snake_case columns and
// the domain's camelCase shapes.
package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"kidnews/internal/storage"
)

// pq SQLSTATE for unique_violation; swallowed on reaction insert because the
// desired semantic is "ensure this reaction exists".
const pqUniqueViolation = "23505"

type Store struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var _ storage.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Ping runs a lightweight count instead of a bare connection ping so a
// missing schema also reports as unhealthy.
func (s *Store) Ping(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// wrapErr converts a backend failure into *storage.Error, carrying the
// postgres SQLSTATE when one is available.
func wrapErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &storage.Error{Op: op, Code: string(pqErr.Code), Err: err}
	}
	return &storage.Error{Op: op, Err: err}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}
