package recommend

import (
	"fmt"

	"github.com/listenupapp/bookrec/internal/domain"
)

// Outcome tags the result of one recommendation query.
type Outcome int

const (
	// OutcomeSuccess carries a non-empty ranked list.
	OutcomeSuccess Outcome = iota
	// OutcomeInvalidInput means the age was missing or zero, or no genre was given.
	OutcomeInvalidInput
	// OutcomeNoMappedGenres means the input was well-formed but no genre is in the vocabulary.
	OutcomeNoMappedGenres
	// OutcomeNoMatches means the query was valid but no catalog book satisfies it.
	OutcomeNoMatches
)

var outcomeNames = map[Outcome]string{
	OutcomeSuccess:        "success",
	OutcomeInvalidInput:   "invalid_input",
	OutcomeNoMappedGenres: "no_mapped_genres",
	OutcomeNoMatches:      "no_matches",
}

// String returns the snake_case name of the outcome.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	name, ok := outcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(name), nil
}

// Result is the outcome of one query together with the context needed to present it.
// Recommendations is non-empty only for OutcomeSuccess.
type Result struct {
	Outcome         Outcome                 `json:"outcome"`
	Profile         domain.UserProfile      `json:"profile"`
	GenreIDs        []string                `json:"genre_ids"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// OK reports whether the result carries recommendations.
func (r *Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}
