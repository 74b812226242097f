package domain

// Document is a knowledge-base article returned by the vector retrieval
// service, ranked by similarity score.
type Document struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"` // similarity in [0,1]
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// Article is a knowledge-base source article before processing for the
// vector store.
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
}
