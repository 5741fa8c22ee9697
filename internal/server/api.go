package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/internal/station"
	"github.com/rainwise/web-go/internal/states"
)

const defaultNearestLimit = 5

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may be gone
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.NewErrorResponse(message))
}

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)

	user, err := api.ParseCoordinates(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var stations []models.Station
	if user == nil {
		stations, err = s.deps.Finder.Stations(r.Context())
	} else {
		limit := api.ParseLimit(params, defaultNearestLimit)
		stations, err = s.deps.Finder.FindNearestStations(r.Context(), user.Latitude, user.Longitude, limit)
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error finding stations")
		writeError(w, http.StatusInternalServerError, "Error finding stations")
		return
	}

	writeJSON(w, http.StatusOK, api.NewStationsResponse(stations))
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	st, err := s.deps.Finder.FindStation(r.Context(), id)
	if errors.Is(err, station.ErrStationNotFound) {
		writeError(w, http.StatusNotFound, "Station not found")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("stationId", id).Msg("Error finding station")
		writeError(w, http.StatusInternalServerError, "Error finding station")
		return
	}

	writeJSON(w, http.StatusOK, api.NewStationsResponse([]models.Station{*st}))
}

// handleNearest answers {"nearest": null} when no location is given.
func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	user, err := api.ParseCoordinates(queryParams(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nearest, err := s.deps.Finder.FindNearest(r.Context(), user)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error finding nearest station")
		writeError(w, http.StatusInternalServerError, "Error finding stations")
		return
	}

	writeJSON(w, http.StatusOK, api.NewNearestResponse(nearest))
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.NewStatesResponse(states.Links()))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	url, ok := states.LookupURL(name)
	if !ok {
		writeError(w, http.StatusNotFound, "State not found")
		return
	}

	writeJSON(w, http.StatusOK, api.NewStateResponse(states.Link{Name: name, URL: url}))
}

func (s *Server) handleSignupAPI(w http.ResponseWriter, r *http.Request) {
	var form signup.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.submitSignup(r, form)
	if err != nil {
		status, body := api.SignupFailure(err)
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusOK, api.NewSignupResponse(result))
}

// submitSignup runs the submission and records its outcome.
func (s *Server) submitSignup(r *http.Request, form signup.Form) (*signup.Result, error) {
	result, err := s.deps.Signup.Submit(r.Context(), form)

	var (
		invalid     *signup.ValidationError
		rejected    *signup.RejectedError
		unreachable *signup.UnreachableError
		outcome     string
	)
	switch {
	case err == nil:
		outcome = "success"
	case errors.As(err, &invalid):
		outcome = "invalid"
	case errors.As(err, &rejected):
		outcome = "rejected"
	case errors.As(err, &unreachable):
		outcome = "unreachable"
	default:
		outcome = "error"
	}
	s.deps.Metrics.SignupOutcomes.WithLabelValues(outcome).Inc()

	return result, err
}
