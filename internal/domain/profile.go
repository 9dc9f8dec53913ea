package domain

// UserProfile is the structured form of one reader input line.
// Age 0 means the age could not be parsed.
// Genres holds the reader's own lowercased vocabulary, in the order typed.
type UserProfile struct {
	Age    int      `json:"age"`
	Genres []string `json:"genres"`
}

// IsValid reports whether the profile carries a usable age and at least one genre.
func (p UserProfile) IsValid() bool {
	return p.Age != 0 && len(p.Genres) > 0
}
