package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kidnews/internal/domain"
	"kidnews/internal/storage"
)

type createUserReq struct {
	ID             string  `json:"id"`
	Email          *string `json:"email,omitempty"`
	Role           string  `json:"role"`
	DisplayName    *string `json:"displayName,omitempty"`
	Age            *int    `json:"age,omitempty"`
	ParentID       *string `json:"parentId,omitempty"`
	MasterID       *string `json:"masterId,omitempty"`
	OrganizationID *string `json:"organizationId,omitempty"`
	CreatedBy      *string `json:"createdBy,omitempty"`
}

func (s *Server) createUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}
	switch req.Role {
	case domain.RoleParent, domain.RoleChild, domain.RoleMaster:
	default:
		return errorJSON(c, http.StatusBadRequest, "role must be parent, child or master")
	}
	if req.ID == "" {
		req.ID = newID()
	}

	user, err := s.store.CreateUser(c.Request().Context(), &domain.User{
		ID:             req.ID,
		Email:          req.Email,
		Role:           req.Role,
		DisplayName:    req.DisplayName,
		Age:            req.Age,
		ParentID:       req.ParentID,
		MasterID:       req.MasterID,
		OrganizationID: req.OrganizationID,
		IsActive:       true,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) listUsers(c echo.Context) error {
	filter := storage.UserFilter{
		Role:           c.QueryParam("role"),
		ParentID:       c.QueryParam("parentId"),
		OrganizationID: c.QueryParam("organizationId"),
	}

	users, err := s.store.Users(c.Request().Context(), filter)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c echo.Context) error {
	user, err := s.store.User(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if user == nil {
		return errorJSON(c, http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c echo.Context) error {
	var upd domain.UserUpdate
	if err := c.Bind(&upd); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad json")
	}

	user, err := s.store.UpdateUser(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if user == nil {
		return errorJSON(c, http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}
