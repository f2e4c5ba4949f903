package domain

import (
	"fmt"
	"time"
)

// Reaction records that one user left one reaction tag on one article.
// The article additionally carries a denormalized list of distinct tags
// for display; providers keep the two in sync.
type Reaction struct {
	ID        string    `json:"id"`
	ArticleID int64     `json:"articleId"`
	UserID    string    `json:"userId"`
	Reaction  string    `json:"reaction"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReactionID derives the composite identifier for an (article, user, tag)
// triple. At most one record exists per triple.
func ReactionID(articleID int64, userID, reaction string) string {
	return fmt.Sprintf("%d:%s:%s", articleID, userID, reaction)
}
