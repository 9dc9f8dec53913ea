package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookrec/internal/genre"
)

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns the canonical genres and the reader words that map to each",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)
}

// GenreResponse is one canonical genre with its accepted reader tokens.
type GenreResponse struct {
	ID     string   `json:"id" doc:"Canonical genre identifier used by the catalog"`
	Name   string   `json:"name" doc:"Display name"`
	Tokens []string `json:"tokens" doc:"Reader words mapped to this genre, sorted"`
}

// ListGenresResponse contains the supported genre vocabulary.
type ListGenresResponse struct {
	Genres []GenreResponse `json:"genres" doc:"Canonical genres in display order"`
}

// ListGenresOutput wraps the genre list for Huma.
type ListGenresOutput struct {
	Body ListGenresResponse
}

func (s *Server) handleListGenres(_ context.Context, _ *struct{}) (*ListGenresOutput, error) {
	genres := make([]GenreResponse, 0, len(genre.DefaultGenres))
	for _, g := range genre.DefaultGenres {
		tokens := genre.Vocabulary(g.ID)
		if tokens == nil {
			tokens = []string{}
		}
		genres = append(genres, GenreResponse{ID: g.ID, Name: g.Name, Tokens: tokens})
	}
	return &ListGenresOutput{Body: ListGenresResponse{Genres: genres}}, nil
}
