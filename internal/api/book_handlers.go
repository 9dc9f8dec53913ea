package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns one catalog book. Identifiers are IRIs, so the id must be path-escaped.",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// GetBookInput contains parameters for getting a single book.
type GetBookInput struct {
	ID string `path:"id" doc:"Path-escaped book identifier"`
}

// BookResponse is a catalog book with its display label.
type BookResponse struct {
	domain.Book
	Label string `json:"label" doc:"Title, or the local name of the id when the book has none"`
}

// GetBookOutput wraps the book response for Huma.
type GetBookOutput struct {
	Body BookResponse
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*GetBookOutput, error) {
	if s.catalog == nil {
		return nil, toStatusError(errors.ErrUnavailable)
	}

	id, err := url.PathUnescape(input.ID)
	if err != nil {
		return nil, toStatusError(errors.Validationf("malformed book id %q", input.ID))
	}

	book, err := s.catalog.GetBook(ctx, id)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			s.logger.ForRequest(getRequestID(ctx)).ErrorContext(ctx, "book lookup failed", "book_id", id, "error", err)
			err = errors.Wrap(err, errors.CodeUnavailable, "get book")
		}
		return nil, toStatusError(err)
	}

	return &GetBookOutput{Body: BookResponse{Book: *book, Label: book.Label()}}, nil
}
