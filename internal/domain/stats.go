package domain

// Stats aggregates reading activity over non-archived articles.
type Stats struct {
	TotalArticles  int            `json:"totalArticles"`
	ReadArticles   int            `json:"readArticles"`
	ReadingRate    int            `json:"readingRate"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}
