package api

import (
	"context"
	"net/http"
	"time"

	"kidnews/internal/domain"
)

func (s *APITestSuite) TestCreateUser() {
	rec := s.request(http.MethodPost, "/api/users", map[string]any{
		"role":        "parent",
		"email":       "parent@example.com",
		"displayName": "Alex",
	})

	s.Equal(http.StatusCreated, rec.Code)

	user := decode[domain.User](s, rec)
	s.NotEmpty(user.ID)
	s.Equal(domain.RoleParent, user.Role)
	s.True(user.IsActive)
}

func (s *APITestSuite) TestCreateUser_BadRole() {
	rec := s.request(http.MethodPost, "/api/users", map[string]any{
		"role": "admin",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestListUsers_FilterByRole() {
	rec := s.request(http.MethodPost, "/api/users", map[string]any{"id": "parent-1", "role": "parent"})
	s.Equal(http.StatusCreated, rec.Code)
	rec = s.request(http.MethodPost, "/api/users", map[string]any{"id": "child-1", "role": "child", "parentId": "parent-1"})
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.request(http.MethodGet, "/api/users?role=child", nil)
	s.Equal(http.StatusOK, rec.Code)

	users := decode[[]domain.User](s, rec)
	s.Len(users, 1)
	s.Equal("child-1", users[0].ID)
}

func (s *APITestSuite) TestGetUser_NotFound() {
	rec := s.request(http.MethodGet, "/api/users/nobody", nil)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestUpdateUser() {
	rec := s.request(http.MethodPost, "/api/users", map[string]any{"id": "parent-1", "role": "parent"})
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.request(http.MethodPatch, "/api/users/parent-1", map[string]any{
		"displayName": "Sam",
	})
	s.Equal(http.StatusOK, rec.Code)

	user := decode[domain.User](s, rec)
	s.Equal("Sam", *user.DisplayName)
}

func (s *APITestSuite) TestInvitationFlow() {
	rec := s.request(http.MethodPost, "/api/invitations", map[string]any{
		"email":     "kid@example.com",
		"role":      "child",
		"invitedBy": "parent-1",
	})
	s.Equal(http.StatusCreated, rec.Code)

	invitation := decode[domain.Invitation](s, rec)
	s.NotEmpty(invitation.Token)
	s.Equal(domain.InvitationPending, invitation.Status)

	rec = s.request(http.MethodGet, "/api/invitations/"+invitation.Token, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodPost, "/api/invitations/"+invitation.Token+"/accept", map[string]any{
		"displayName": "Robin",
		"age":         8,
	})
	s.Equal(http.StatusCreated, rec.Code)

	user := decode[domain.User](s, rec)
	s.Equal("kid@example.com", *user.Email)
	s.Equal(domain.RoleChild, user.Role)
	s.Equal("parent-1", *user.CreatedBy)

	rec = s.request(http.MethodGet, "/api/invitations/"+invitation.Token, nil)
	accepted := decode[domain.Invitation](s, rec)
	s.Equal(domain.InvitationAccepted, accepted.Status)
	s.Equal(user.ID, *accepted.AcceptedBy)
}

func (s *APITestSuite) TestAcceptInvitation_AlreadyAccepted() {
	rec := s.request(http.MethodPost, "/api/invitations", map[string]any{
		"email":     "kid@example.com",
		"role":      "child",
		"invitedBy": "parent-1",
	})
	invitation := decode[domain.Invitation](s, rec)

	rec = s.request(http.MethodPost, "/api/invitations/"+invitation.Token+"/accept", map[string]any{})
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.request(http.MethodPost, "/api/invitations/"+invitation.Token+"/accept", map[string]any{})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *APITestSuite) TestAcceptInvitation_Expired() {
	_, err := s.mem.CreateInvitation(context.Background(), &domain.Invitation{
		Token:     "stale-token",
		Email:     "kid@example.com",
		Role:      domain.RoleChild,
		InvitedBy: "parent-1",
		Status:    domain.InvitationPending,
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	s.Require().NoError(err)

	rec := s.request(http.MethodPost, "/api/invitations/stale-token/accept", map[string]any{})

	s.Equal(http.StatusGone, rec.Code)
}

func (s *APITestSuite) TestAcceptInvitation_NotFound() {
	rec := s.request(http.MethodPost, "/api/invitations/no-such-token/accept", map[string]any{})

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestCreateInvitation_BadRole() {
	rec := s.request(http.MethodPost, "/api/invitations", map[string]any{
		"email":     "kid@example.com",
		"role":      "master",
		"invitedBy": "parent-1",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestOrganizations() {
	rec := s.request(http.MethodPost, "/api/organizations", map[string]any{
		"name":      "Alpha School",
		"createdBy": "master-1",
	})
	s.Equal(http.StatusCreated, rec.Code)

	org := decode[domain.Organization](s, rec)
	s.NotEmpty(org.ID)
	s.True(org.IsActive)

	rec = s.request(http.MethodGet, "/api/organizations", nil)
	s.Equal(http.StatusOK, rec.Code)

	orgs := decode[[]domain.Organization](s, rec)
	s.Len(orgs, 1)

	rec = s.request(http.MethodGet, "/api/organizations/"+org.ID, nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/api/organizations/missing", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
