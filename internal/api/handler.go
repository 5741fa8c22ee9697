package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/internal/states"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type StationsResponse struct {
	APIResponse
	Stations []models.Station `json:"stations"`
}

type NearestResponse struct {
	APIResponse
	Nearest *models.NearestResult `json:"nearest"`
}

type StatesResponse struct {
	APIResponse
	States []states.Link `json:"states"`
}

type StateResponse struct {
	APIResponse
	State states.Link `json:"state"`
}

type SignupResponse struct {
	APIResponse
	Redirect string       `json:"redirect"`
	User     *signup.User `json:"user,omitempty"`
}

type ErrorResponse struct {
	APIResponse
	Error  string             `json:"error"`
	Fields signup.FieldErrors `json:"fields,omitempty"`
}

func NewStationsResponse(stations []models.Station) *StationsResponse {
	return &StationsResponse{
		APIResponse: APIResponse{ResponseType: "stations"},
		Stations:    stations,
	}
}

func NewNearestResponse(nearest *models.NearestResult) *NearestResponse {
	return &NearestResponse{
		APIResponse: APIResponse{ResponseType: "nearest"},
		Nearest:     nearest,
	}
}

func NewStatesResponse(links []states.Link) *StatesResponse {
	return &StatesResponse{
		APIResponse: APIResponse{ResponseType: "states"},
		States:      links,
	}
}

func NewStateResponse(link states.Link) *StateResponse {
	return &StateResponse{
		APIResponse: APIResponse{ResponseType: "state"},
		State:       link,
	}
}

func NewSignupResponse(result *signup.Result) *SignupResponse {
	return &SignupResponse{
		APIResponse: APIResponse{ResponseType: "signup"},
		Redirect:    result.Redirect,
		User:        result.User,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// SignupFailure maps a Submit error to a status code and the body shown to
// the user.
func SignupFailure(err error) (int, *ErrorResponse) {
	var (
		invalid     *signup.ValidationError
		rejected    *signup.RejectedError
		unreachable *signup.UnreachableError
	)
	switch {
	case errors.As(err, &invalid):
		resp := NewErrorResponse("Please correct the highlighted fields")
		resp.Fields = invalid.Fields
		return http.StatusBadRequest, resp
	case errors.As(err, &rejected):
		status := rejected.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return status, NewErrorResponse(rejected.Detail)
	case errors.As(err, &unreachable):
		return http.StatusBadGateway, NewErrorResponse(signup.NetworkErrorMessage)
	default:
		return http.StatusInternalServerError, NewErrorResponse(signup.GenericFailureMessage)
	}
}

func headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	return Status(body, http.StatusOK)
}

func Status(body interface{}, statusCode int) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(body),
	}, nil
}

// Parameter parsing helpers

// ParseCoordinates reads lat and lon. A nil coordinate with a nil error
// means the caller did not supply a location.
func ParseCoordinates(params map[string]string) (*geo.Coordinate, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat && !hasLon {
		return nil, nil
	}
	if !hasLat || !hasLon {
		return nil, InvalidCoordinatesError{Reason: "lat and lon must be supplied together"}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, InvalidCoordinatesError{Reason: fmt.Sprintf("latitude %q is not a number", latStr)}
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil, InvalidCoordinatesError{Reason: fmt.Sprintf("longitude %q is not a number", lonStr)}
	}

	c := geo.Coordinate{Latitude: lat, Longitude: lon}
	if err := geo.ValidateCoordinate(c); err != nil {
		return nil, InvalidCoordinatesError{Reason: err.Error(), Err: err}
	}

	return &c, nil
}

// ParseLimit returns the limit parameter, or def when absent or not a
// positive integer.
func ParseLimit(params map[string]string, def int) int {
	if limitStr, ok := params["limit"]; ok {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

type InvalidCoordinatesError struct {
	Reason string
	Err    error
}

func (e InvalidCoordinatesError) Unwrap() error {
	return e.Err
}

func (e InvalidCoordinatesError) Error() string {
	if e.Reason == "" {
		return "Invalid coordinates"
	}
	return "Invalid coordinates: " + e.Reason
}
