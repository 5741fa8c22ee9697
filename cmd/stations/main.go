package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/handler"
	"github.com/rainwise/web-go/internal/station"
)

var (
	lambdaStart     = lambda.Start // Allow mocking of lambda.Start in tests
	stationsHandler *handler.StationsHandler
	setupOnce       sync.Once
)

func initializeService() error {
	var initErr error
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		finder, err := station.NewFinderFromConfig(context.Background(), cfg, config.GetCacheConfig())
		if err != nil {
			initErr = fmt.Errorf("initializing station finder: %w", err)
			return
		}

		stationsHandler = handler.NewStationsHandler(finder)
	})
	return initErr
}

func init() {
	if err := initializeService(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize stations service")
	}
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if stationsHandler == nil {
		return api.Error("Service not initialized", http.StatusInternalServerError)
	}
	return stationsHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}
