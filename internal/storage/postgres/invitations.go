package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"kidnews/internal/domain"
)

const invitationColumns = "token, email, role, invited_by, organization_id, status, " +
	"accepted_by, created_at, expires_at, accepted_at"

type invitationRow struct {
	Token          string     `db:"token"`
	Email          string     `db:"email"`
	Role           string     `db:"role"`
	InvitedBy      string     `db:"invited_by"`
	OrganizationID *string    `db:"organization_id"`
	Status         string     `db:"status"`
	AcceptedBy     *string    `db:"accepted_by"`
	CreatedAt      time.Time  `db:"created_at"`
	ExpiresAt      time.Time  `db:"expires_at"`
	AcceptedAt     *time.Time `db:"accepted_at"`
}

func (r invitationRow) toDomain() domain.Invitation {
	return domain.Invitation{
		Token:          r.Token,
		Email:          r.Email,
		Role:           r.Role,
		InvitedBy:      r.InvitedBy,
		OrganizationID: r.OrganizationID,
		Status:         r.Status,
		AcceptedBy:     r.AcceptedBy,
		CreatedAt:      r.CreatedAt,
		ExpiresAt:      r.ExpiresAt,
		AcceptedAt:     r.AcceptedAt,
	}
}

func (s *Store) CreateInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	query, args, err := s.sb.Insert("invitations").
		SetMap(map[string]interface{}{
			"token":           inv.Token,
			"email":           inv.Email,
			"role":            inv.Role,
			"invited_by":      inv.InvitedBy,
			"organization_id": inv.OrganizationID,
			"status":          inv.Status,
			"expires_at":      inv.ExpiresAt,
		}).
		Suffix("RETURNING " + invitationColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("create invitation", err)
	}

	var row invitationRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, wrapErr("create invitation", err)
	}

	stored := row.toDomain()
	return &stored, nil
}

func (s *Store) InvitationByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query, args, err := s.sb.Select(invitationColumns).
		From("invitations").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, wrapErr("get invitation", err)
	}

	var row invitationRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get invitation", err)
	}

	inv := row.toDomain()
	return &inv, nil
}

func (s *Store) AcceptInvitation(ctx context.Context, token, userID string) (*domain.Invitation, error) {
	query, args, err := s.sb.Update("invitations").
		SetMap(map[string]interface{}{
			"status":      domain.InvitationAccepted,
			"accepted_by": userID,
			"accepted_at": time.Now(),
		}).
		Where(sq.Eq{"token": token}).
		Suffix("RETURNING " + invitationColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("accept invitation", err)
	}

	var row invitationRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("accept invitation", err)
	}

	inv := row.toDomain()
	return &inv, nil
}

func (s *Store) ExpireInvitations(ctx context.Context, now time.Time) (int, error) {
	query, args, err := s.sb.Update("invitations").
		Set("status", domain.InvitationExpired).
		Where(sq.Eq{"status": domain.InvitationPending}).
		Where(sq.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, wrapErr("expire invitations", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapErr("expire invitations", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr("expire invitations", err)
	}
	return int(affected), nil
}

const organizationColumns = "id, name, created_by, is_active, created_at"

type organizationRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy string    `db:"created_by"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

func (r organizationRow) toDomain() domain.Organization {
	return domain.Organization{
		ID:        r.ID,
		Name:      r.Name,
		CreatedBy: r.CreatedBy,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

func (s *Store) CreateOrganization(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	query, args, err := s.sb.Insert("organizations").
		SetMap(map[string]interface{}{
			"id":         org.ID,
			"name":       org.Name,
			"created_by": org.CreatedBy,
			"is_active":  org.IsActive,
		}).
		Suffix("RETURNING " + organizationColumns).
		ToSql()
	if err != nil {
		return nil, wrapErr("create organization", err)
	}

	var row organizationRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, wrapErr("create organization", err)
	}

	stored := row.toDomain()
	return &stored, nil
}

func (s *Store) OrganizationByID(ctx context.Context, id string) (*domain.Organization, error) {
	query, args, err := s.sb.Select(organizationColumns).
		From("organizations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, wrapErr("get organization", err)
	}

	var row organizationRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get organization", err)
	}

	org := row.toDomain()
	return &org, nil
}

func (s *Store) Organizations(ctx context.Context) ([]domain.Organization, error) {
	query, args, err := s.sb.Select(organizationColumns).
		From("organizations").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, wrapErr("list organizations", err)
	}

	var rows []organizationRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapErr("list organizations", err)
	}

	orgs := make([]domain.Organization, len(rows))
	for i, r := range rows {
		orgs[i] = r.toDomain()
	}
	return orgs, nil
}
