package domain

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFallback  = "fallback"
)

// Article is a news article submitted by a parent, stored alongside the
// child-friendly rewrite produced by the rewriter. JSON tags are the wire
// format consumed by the web client.
type Article struct {
	ID               int64      `json:"id"`
	OriginalURL      string     `json:"originalUrl"`
	TargetAge        int        `json:"targetAge"`
	OriginalTitle    string     `json:"originalTitle"`
	OriginalContent  string     `json:"originalContent"`
	ConvertedTitle   string     `json:"convertedTitle"`
	ConvertedContent string     `json:"convertedContent"`
	ConvertedSummary string     `json:"convertedSummary"`
	Category         string     `json:"category"`
	Status           string     `json:"status"`
	SiteName         *string    `json:"siteName,omitempty"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	HasRead          bool       `json:"hasRead"`
	Reactions        []string   `json:"reactions"`
	IsArchived       bool       `json:"isArchived"`
	ArchivedAt       *time.Time `json:"archivedAt,omitempty"`
	ParentID         *string    `json:"parentId,omitempty"`
	OrganizationID   *string    `json:"organizationId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ArticleUpdate is a partial patch; nil fields are left unchanged. Patching
// IsArchived to false also clears ArchivedAt.
type ArticleUpdate struct {
	ConvertedTitle   *string    `json:"convertedTitle,omitempty"`
	ConvertedContent *string    `json:"convertedContent,omitempty"`
	ConvertedSummary *string    `json:"convertedSummary,omitempty"`
	Category         *string    `json:"category,omitempty"`
	Status           *string    `json:"status,omitempty"`
	HasRead          *bool      `json:"hasRead,omitempty"`
	IsArchived       *bool      `json:"isArchived,omitempty"`
	ArchivedAt       *time.Time `json:"archivedAt,omitempty"`
}
