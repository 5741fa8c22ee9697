package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/station"
)

const defaultLimit = 5

type StationsHandler struct {
	stationFinder models.StationFinder
}

func NewStationsHandler(finder models.StationFinder) *StationsHandler {
	return &StationsHandler{
		stationFinder: finder,
	}
}

func (h *StationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	// Check if we're looking up by station ID or coordinates
	if stationID, ok := params["stationId"]; ok {
		stationLocal, err := h.stationFinder.FindStation(ctx, stationID)
		if errors.Is(err, station.ErrStationNotFound) {
			return api.Error("Station not found", http.StatusNotFound)
		}
		if err != nil {
			log.Error().Err(err).Str("stationId", stationID).Msg("Error finding station")
			return api.Error("Error finding station", http.StatusInternalServerError)
		}
		return api.Success(api.NewStationsResponse([]models.Station{*stationLocal}))
	}

	user, err := api.ParseCoordinates(params)
	if err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	// No location: the whole list
	if user == nil {
		stations, err := h.stationFinder.Stations(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error listing stations")
			return api.Error("Error finding stations", http.StatusInternalServerError)
		}
		return api.Success(api.NewStationsResponse(stations))
	}

	limit := api.ParseLimit(params, defaultLimit)
	stations, err := h.stationFinder.FindNearestStations(ctx, user.Latitude, user.Longitude, limit)
	if err != nil {
		log.Error().Err(err).Msg("Error finding nearest stations")
		return api.Error("Error finding stations", http.StatusInternalServerError)
	}

	return api.Success(api.NewStationsResponse(stations))
}
