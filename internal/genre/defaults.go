package genre

// Canonical genre identifiers used by catalog records.
const (
	Fantasy        = "Fantasy"
	ScienceFiction = "ScienceFiction"
	Classic        = "Classic"
	Detective      = "Detective"
	Romance        = "Romance"
	Horror         = "Horror"
	Adventure      = "Adventure"
	Drama          = "Drama"
	Comedy         = "Comedy"
	Mystery        = "Mystery"
	Action         = "Action"
	Tragedy        = "Tragedy"
	Poetry         = "Poetry"
)

// Genre describes a canonical genre for display.
type Genre struct {
	ID   string
	Name string
}

// DefaultGenres is the canonical genre list in display order.
var DefaultGenres = []Genre{
	{ID: Fantasy, Name: "Fantasy"},
	{ID: ScienceFiction, Name: "Science Fiction"},
	{ID: Classic, Name: "Classic"},
	{ID: Detective, Name: "Detective"},
	{ID: Romance, Name: "Romance"},
	{ID: Horror, Name: "Horror"},
	{ID: Adventure, Name: "Adventure"},
	{ID: Drama, Name: "Drama"},
	{ID: Comedy, Name: "Comedy"},
	{ID: Mystery, Name: "Mystery"},
	{ID: Action, Name: "Action"},
	{ID: Tragedy, Name: "Tragedy"},
	{ID: Poetry, Name: "Poetry"},
}

// IsCanonical reports whether id is one of the canonical genre identifiers.
func IsCanonical(id string) bool {
	for _, g := range DefaultGenres {
		if g.ID == id {
			return true
		}
	}
	return false
}
