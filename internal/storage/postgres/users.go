package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"kidnews/internal/domain"
	"kidnews/internal/storage"
)

const userColumns = "id, email, role, display_name, age, parent_id, master_id, " +
	"organization_id, is_active, tokens_used, created_by, created_at, last_login_at"

type userRow struct {
	ID             string    `db:"id"`
	Email          *string   `db:"email"`
	Role           string    `db:"role"`
	DisplayName    *string   `db:"display_name"`
	Age            *int      `db:"age"`
	ParentID       *string   `db:"parent_id"`
	MasterID       *string   `db:"master_id"`
	OrganizationID *string   `db:"organization_id"`
	IsActive       bool      `db:"is_active"`
	TokensUsed     int64     `db:"tokens_used"`
	CreatedBy      *string   `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
	LastLoginAt    time.Time `db:"last_login_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:             r.ID,
		Email:          r.Email,
		Role:           r.Role,
		DisplayName:    r.DisplayName,
		Age:            r.Age,
		ParentID:       r.ParentID,
		MasterID:       r.MasterID,
		OrganizationID: r.OrganizationID,
		IsActive:       r.IsActive,
		TokensUsed:     r.TokensUsed,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		LastLoginAt:    r.LastLoginAt,
	}
}

func (s *Store) User(ctx context.Context, id string) (*domain.User, error) {
	query, args, err := s.sb.Select(userColumns).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, wrapErr("get user", err)
	}

	var row userRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get user", err)
	}

	u := row.toDomain()
	return &u, nil
}

func (s *Store) Users(ctx context.Context, filter storage.UserFilter) ([]domain.User, error) {
	builder := s.sb.Select(userColumns).
		From("users").
		OrderBy("created_at DESC", "id ASC")

	if filter.Role != "" {
		builder = builder.Where(sq.Eq{"role": filter.Role})
	}
	if filter.ParentID != "" {
		builder = builder.Where(sq.Eq{"parent_id": filter.ParentID})
	}
	if filter.OrganizationID != "" {
		builder = builder.Where(sq.Eq{"organization_id": filter.OrganizationID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, wrapErr("list users", err)
	}

	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapErr("list users", err)
	}

	users := make([]domain.User, len(rows))
	for i, r := range rows {
		users[i] = r.toDomain()
	}
	return users, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := s.sb.Insert("users").
		SetMap(map[string]interface{}{
			"id":              u.ID,
			"email":           u.Email,
			"role":            u.Role,
			"display_name":    u.DisplayName,
			"age":             u.Age,
			"parent_id":       u.ParentID,
			"master_id":       u.MasterID,
			"organization_id": u.OrganizationID,
			"is_active":       u.IsActive,
			"tokens_used":     u.TokensUsed,
			"created_by":      u.CreatedBy,
		}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("create user", err)
	}

	var row userRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, wrapErr("create user", err)
	}

	stored := row.toDomain()
	return &stored, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	values := map[string]interface{}{}
	if upd.Email != nil {
		values["email"] = *upd.Email
	}
	if upd.DisplayName != nil {
		values["display_name"] = *upd.DisplayName
	}
	if upd.Age != nil {
		values["age"] = *upd.Age
	}
	if upd.IsActive != nil {
		values["is_active"] = *upd.IsActive
	}
	if upd.TokensUsed != nil {
		values["tokens_used"] = *upd.TokensUsed
	}
	if upd.LastLoginAt != nil {
		values["last_login_at"] = *upd.LastLoginAt
	}
	if len(values) == 0 {
		return s.User(ctx, id)
	}

	query, args, err := s.sb.Update("users").
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("update user", err)
	}

	var row userRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("update user", err)
	}

	u := row.toDomain()
	return &u, nil
}
