package domain

// Recommendation is one ranked result of a recommendation query.
type Recommendation struct {
	BookID   string   `json:"book_id"`
	Title    string   `json:"title"` // title, or the local name of BookID when the book has none
	AgeLimit *int     `json:"age_limit,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// NewRecommendation builds the result entry for a catalog book.
func NewRecommendation(b *Book) Recommendation {
	return Recommendation{
		BookID:   b.ID,
		Title:    b.Label(),
		AgeLimit: b.AgeLimit,
		Rating:   b.Rating,
	}
}
