package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kidnews/internal/domain"
)

type createInvitationReq struct {
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	InvitedBy      string  `json:"invitedBy"`
	OrganizationID *string `json:"organizationId,omitempty"`
}

func (s *Server) createInvitation(c echo.Context) error {
	var req createInvitationReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.Email == "" || req.InvitedBy == "" {
		return errorJSON(c, http.StatusBadRequest, "email and invitedBy are required")
	}
	switch req.Role {
	case domain.RoleParent, domain.RoleChild:
	default:
		return errorJSON(c, http.StatusBadRequest, "role must be parent or child")
	}

	invitation, err := s.store.CreateInvitation(c.Request().Context(), &domain.Invitation{
		Token:          newID(),
		Email:          req.Email,
		Role:           req.Role,
		InvitedBy:      req.InvitedBy,
		OrganizationID: req.OrganizationID,
		Status:         domain.InvitationPending,
		ExpiresAt:      time.Now().Add(s.invitationTTL),
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, invitation)
}

func (s *Server) getInvitation(c echo.Context) error {
	invitation, err := s.store.InvitationByToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if invitation == nil {
		return errorJSON(c, http.StatusNotFound, "invitation not found")
	}
	return c.JSON(http.StatusOK, invitation)
}

type acceptInvitationReq struct {
	UserID      string  `json:"userId"`
	DisplayName *string `json:"displayName,omitempty"`
	Age         *int    `json:"age,omitempty"`
}

// acceptInvitation redeems a pending invitation: it creates the invited
// account and marks the invitation accepted.
func (s *Server) acceptInvitation(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")

	var req acceptInvitationReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}

	invitation, err := s.store.InvitationByToken(ctx, token)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if invitation == nil {
		return errorJSON(c, http.StatusNotFound, "invitation not found")
	}
	if invitation.Status != domain.InvitationPending {
		return errorJSON(c, http.StatusConflict, "invitation already "+invitation.Status)
	}
	if invitation.ExpiresAt.Before(time.Now()) {
		return errorJSON(c, http.StatusGone, "invitation expired")
	}

	if req.UserID == "" {
		req.UserID = newID()
	}

	user, err := s.store.CreateUser(ctx, &domain.User{
		ID:             req.UserID,
		Email:          &invitation.Email,
		Role:           invitation.Role,
		DisplayName:    req.DisplayName,
		Age:            req.Age,
		OrganizationID: invitation.OrganizationID,
		IsActive:       true,
		CreatedBy:      &invitation.InvitedBy,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	if _, err := s.store.AcceptInvitation(ctx, token, user.ID); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, user)
}

type createOrganizationReq struct {
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
}

func (s *Server) createOrganization(c echo.Context) error {
	var req createOrganizationReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	if req.Name == "" || req.CreatedBy == "" {
		return errorJSON(c, http.StatusBadRequest, "name and createdBy are required")
	}

	org, err := s.store.CreateOrganization(c.Request().Context(), &domain.Organization{
		ID:        newID(),
		Name:      req.Name,
		CreatedBy: req.CreatedBy,
		IsActive:  true,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, org)
}

func (s *Server) listOrganizations(c echo.Context) error {
	orgs, err := s.store.Organizations(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orgs)
}

func (s *Server) getOrganization(c echo.Context) error {
	org, err := s.store.OrganizationByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if org == nil {
		return errorJSON(c, http.StatusNotFound, "organization not found")
	}
	return c.JSON(http.StatusOK, org)
}
