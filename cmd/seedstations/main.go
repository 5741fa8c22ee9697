// Command seedstations writes the placeholder station list into the
// station registry table so STATION_SOURCE=dynamo has data to serve.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/cache"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/station"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	table := flag.String("table", cfg.StationTable, "DynamoDB station table")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := cache.NewDynamoClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	stations := station.PlaceholderStations()
	for i := range stations {
		stations[i].Source = models.SourceRegistry
	}
	registry := cache.NewDynamoStationTable(client, *table, config.GetCacheConfig())
	if err := registry.SaveStations(ctx, stations); err != nil {
		log.Error().Err(err).Str("table", *table).Msg("Failed to seed stations")
		os.Exit(1)
	}

	log.Info().Int("count", len(stations)).Str("table", *table).Msg("Seeded station registry")
}
