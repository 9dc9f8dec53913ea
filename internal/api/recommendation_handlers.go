package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/present"
	"github.com/listenupapp/bookrec/internal/profile"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommendBooks",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations",
		Summary:     "Recommend books",
		Description: "Parses a free-text reader profile and returns matching books ranked by rating. " +
			"Unusable input and empty results are reported through the outcome field, not as errors.",
		Tags: []string{"Recommendations"},
	}, s.handleRecommend)
}

// RecommendRequest is the request body for a recommendation query.
type RecommendRequest struct {
	Profile string `json:"profile" maxLength:"4096" doc:"Free-text profile, e.g. \"I am 13, I like: фантастика, фэнтези\""`
}

// RecommendInput wraps the recommendation request for Huma.
type RecommendInput struct {
	Body RecommendRequest
}

// RecommendResponse is the answer to one recommendation query.
type RecommendResponse struct {
	Outcome         string                  `json:"outcome" enum:"success,invalid_input,no_mapped_genres,no_matches" doc:"Result kind"`
	Age             int                     `json:"age" doc:"Parsed age, 0 when none was found"`
	Genres          []string                `json:"genres" doc:"Genre words as typed, lowercased"`
	GenreIDs        []string                `json:"genre_ids" doc:"Canonical genres the words mapped to"`
	Message         string                  `json:"message" doc:"Human-readable summary"`
	Recommendations []domain.Recommendation `json:"recommendations" doc:"Books ranked by rating, highest first; unrated last"`
	Lines           []string                `json:"lines" doc:"Recommendations rendered as numbered text lines"`
	RequestID       string                  `json:"request_id" doc:"Request id, also sent as X-Request-ID"`
}

// RecommendOutput wraps the recommendation response for Huma.
type RecommendOutput struct {
	Body RecommendResponse
}

func (s *Server) handleRecommend(ctx context.Context, input *RecommendInput) (*RecommendOutput, error) {
	requestID := getRequestID(ctx)
	p := profile.Parse(input.Body.Profile)

	res, err := s.recommender.Recommend(ctx, p)
	if err != nil {
		s.logger.ForRequest(requestID).ErrorContext(ctx, "recommendation failed", "error", err)
		return nil, toStatusError(err)
	}

	s.logger.ForRequest(requestID).DebugContext(ctx, "recommendation served",
		"outcome", res.Outcome.String(),
		"results", len(res.Recommendations),
	)

	return &RecommendOutput{
		Body: RecommendResponse{
			Outcome:         res.Outcome.String(),
			Age:             res.Profile.Age,
			Genres:          res.Profile.Genres,
			GenreIDs:        res.GenreIDs,
			Message:         present.Message(res),
			Recommendations: res.Recommendations,
			Lines:           present.Lines(res),
			RequestID:       requestID,
		},
	}, nil
}
