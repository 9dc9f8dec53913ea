package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/bookrec/internal/errors"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{name: "success response", status: "200", input: map[string]string{"key": "value"}},
		{name: "no content response", status: "204", input: nil},
		{name: "bad request error", status: "400", input: errors.New("invalid input")},
		{name: "coded error with details", status: "422", input: &APIError{Code: "VALIDATION", Message: "bad body", Details: []string{"profile is required"}}},
		{name: "internal server error", status: "500", input: errors.New("internal error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			jsonBytes, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(jsonBytes, &envelope))

			require.Contains(t, envelope, "v", "Envelope must contain version field 'v'")
			assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"title": "Dune"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestEnvelopeTransformer_PlainError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "400", errors.New("validation failed"))
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")
	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data)
	assert.Equal(t, "validation failed", envelope.Error)
}

func TestEnvelopeTransformer_CodedError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "503", &APIError{Code: "UNAVAILABLE", Message: "catalog down"})
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok, "Expected APIErrorEnvelope type")
	assert.False(t, envelope.Success)
	assert.Equal(t, "UNAVAILABLE", envelope.Code)
	assert.Equal(t, "catalog down", envelope.Message)
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		errs       []error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "domain validation error keeps its code",
			status:     http.StatusInternalServerError,
			errs:       []error{domainerrors.Validation("bad record")},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:       "wrapped unavailable error",
			status:     http.StatusInternalServerError,
			errs:       []error{domainerrors.Wrap(errors.New("dial tcp"), domainerrors.CodeUnavailable, "query catalog")},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "UNAVAILABLE",
		},
		{
			name:       "plain error falls back to status",
			status:     http.StatusNotFound,
			errs:       []error{errors.New("no route")},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "request validation",
			status:     http.StatusUnprocessableEntity,
			errs:       []error{errors.New("expected required property profile")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION",
		},
		{
			name:       "unknown status",
			status:     http.StatusTeapot,
			wantStatus: http.StatusTeapot,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := newAPIError(tt.status, "message", tt.errs...)

			apiErr, ok := se.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, apiErr.GetStatus())
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestNewAPIError_HidesInfrastructureCause(t *testing.T) {
	err := domainerrors.Wrap(errors.New("dial tcp 10.0.0.1:7687"), domainerrors.CodeUnavailable, "query catalog")

	apiErr := newAPIError(http.StatusInternalServerError, "unexpected", err).(*APIError)
	assert.Equal(t, "query catalog", apiErr.Message)

	validation := domainerrors.Wrap(errors.New("line 3"), domainerrors.CodeValidation, "bad catalog")
	apiErr = newAPIError(http.StatusInternalServerError, "unexpected", validation).(*APIError)
	assert.Equal(t, "bad catalog: line 3", apiErr.Message)
}
