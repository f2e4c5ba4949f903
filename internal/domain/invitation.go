package domain

import "time"

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Invitation lets a master invite a parent (or a parent invite a child) by
// email. Pending invitations past their expiry are swept to "expired" by a
// background worker.
type Invitation struct {
	Token          string     `json:"token"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	InvitedBy      string     `json:"invitedBy"`
	OrganizationID *string    `json:"organizationId,omitempty"`
	Status         string     `json:"status"`
	AcceptedBy     *string    `json:"acceptedBy,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
}

// Organization groups parent accounts under a master admin.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
