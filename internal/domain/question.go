package domain

import "time"

const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
)

// Question is a child's question about an article, optionally answered by a
// parent. Status is "answered" iff ParentAnswer and AnsweredAt are set.
type Question struct {
	ID           string     `json:"id"`
	ArticleID    int64      `json:"articleId"`
	UserID       string     `json:"userId"`
	Question     string     `json:"question"`
	ParentAnswer *string    `json:"parentAnswer,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	AnsweredAt   *time.Time `json:"answeredAt,omitempty"`
}
