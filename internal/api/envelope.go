package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped whenever the envelope shape changes.
const EnvelopeVersion = 1

// APIEnvelope wraps every successful response and plain error responses.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps coded error responses.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer is a huma transformer that wraps response bodies in the
// versioned envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if err, ok := v.(error); ok {
		return errorEnvelope(err), nil
	}
	if len(status) > 0 && status[0] >= '4' {
		return APIEnvelope{Version: EnvelopeVersion, Success: false, Data: v}, nil
	}
	return APIEnvelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
}

func errorEnvelope(err error) any {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}
	}
	return APIEnvelope{Version: EnvelopeVersion, Error: err.Error()}
}
