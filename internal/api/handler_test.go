package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/internal/states"
)

func TestSuccess(t *testing.T) {
	tests := []struct {
		name     string
		response interface{ GetResponseType() string }
		want     string
	}{
		{
			name:     "station response",
			response: NewStationsResponse([]models.Station{}),
			want:     "stations",
		},
		{
			name:     "nearest response",
			response: NewNearestResponse(nil),
			want:     "nearest",
		},
		{
			name:     "states response",
			response: NewStatesResponse(states.Links()),
			want:     "states",
		},
		{
			name:     "error response",
			response: NewErrorResponse("test error"),
			want:     "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Success(tt.response)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, got.StatusCode)

			// Verify response body can be unmarshaled back to the correct type
			var resp APIResponse
			err = json.Unmarshal([]byte(got.Body), &resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.ResponseType)
			assert.Equal(t, tt.response.GetResponseType(), resp.ResponseType)

			// Verify CORS headers
			assert.Equal(t, "application/json", got.Headers["Content-Type"])
			assert.Equal(t, "*", got.Headers["Access-Control-Allow-Origin"])
		})
	}
}

func TestNearestResponseEncodesNull(t *testing.T) {
	got, err := Success(NewNearestResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"responseType":"nearest","nearest":null}`, got.Body)
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
	}{
		{"bad request", "Invalid parameters", http.StatusBadRequest},
		{"not found", "Station not found", http.StatusNotFound},
		{"internal", "Error finding stations", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Error(tt.message, tt.statusCode)
			require.NoError(t, err)
			assert.Equal(t, tt.statusCode, got.StatusCode)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(got.Body), &resp))
			assert.Equal(t, "error", resp.ResponseType)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestSuccessUnencodableBody(t *testing.T) {
	got, err := Success(map[string]interface{}{"bad": make(chan int)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		want    *geo.Coordinate
		wantErr bool
	}{
		{"absent", map[string]string{}, nil, false},
		{"valid", map[string]string{"lat": "19.076", "lon": "72.8777"}, &geo.Coordinate{Latitude: 19.076, Longitude: 72.8777}, false},
		{"only lat", map[string]string{"lat": "19.076"}, nil, true},
		{"not a number", map[string]string{"lat": "north", "lon": "72"}, nil, true},
		{"out of range", map[string]string{"lat": "91", "lon": "72"}, nil, true},
		{"nan", map[string]string{"lat": "NaN", "lon": "72"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.params)
			if tt.wantErr {
				var invalid InvalidCoordinatesError
				assert.True(t, errors.As(err, &invalid))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoordinatesKeepsFieldError(t *testing.T) {
	_, err := ParseCoordinates(map[string]string{"lat": "10", "lon": "200"})

	var coordErr *geo.CoordinateError
	require.True(t, errors.As(err, &coordErr))
	assert.Equal(t, "longitude", coordErr.Field)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 5, ParseLimit(map[string]string{}, 5))
	assert.Equal(t, 3, ParseLimit(map[string]string{"limit": "3"}, 5))
	assert.Equal(t, 5, ParseLimit(map[string]string{"limit": "-1"}, 5))
	assert.Equal(t, 5, ParseLimit(map[string]string{"limit": "many"}, 5))
}

func TestSignupFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     &signup.ValidationError{Fields: signup.FieldErrors{"email": "Email is required"}},
			status:  http.StatusBadRequest,
			message: "Please correct the highlighted fields",
		},
		{
			name:    "rejected",
			err:     &signup.RejectedError{Status: http.StatusBadRequest, Detail: "Email already registered"},
			status:  http.StatusBadRequest,
			message: "Email already registered",
		},
		{
			name:    "rejected with odd status",
			err:     &signup.RejectedError{Status: http.StatusCreated, Detail: signup.GenericFailureMessage},
			status:  http.StatusBadGateway,
			message: signup.GenericFailureMessage,
		},
		{
			name:    "unreachable",
			err:     &signup.UnreachableError{Err: errors.New("connection refused")},
			status:  http.StatusBadGateway,
			message: signup.NetworkErrorMessage,
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: signup.GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := SignupFailure(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}
