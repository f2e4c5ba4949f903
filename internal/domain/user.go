package domain

import "time"

const (
	RoleParent = "parent"
	RoleChild  = "child"
	RoleMaster = "master"
)

// User is a parent, child or master account. Child users reference their
// parent; parents may belong to an organization. The provider does not
// enforce these references, callers do.
type User struct {
	ID             string    `json:"id"`
	Email          *string   `json:"email,omitempty"`
	Role           string    `json:"role"`
	DisplayName    *string   `json:"displayName,omitempty"`
	Age            *int      `json:"age,omitempty"`
	ParentID       *string   `json:"parentId,omitempty"`
	MasterID       *string   `json:"masterId,omitempty"`
	OrganizationID *string   `json:"organizationId,omitempty"`
	IsActive       bool      `json:"isActive"`
	TokensUsed     int64     `json:"tokensUsed"`
	CreatedBy      *string   `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastLoginAt    time.Time `json:"lastLoginAt"`
}

// UserUpdate is a partial patch; nil fields are left unchanged.
type UserUpdate struct {
	Email       *string    `json:"email,omitempty"`
	DisplayName *string    `json:"displayName,omitempty"`
	Age         *int       `json:"age,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
	TokensUsed  *int64     `json:"tokensUsed,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}
