package station

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/cache"
	"github.com/rainwise/web-go/internal/config"
)

// NewFinderFromConfig wires the lookup chain selected by STATION_SOURCE.
// The static source needs no AWS access.
func NewFinderFromConfig(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig) (*Finder, error) {
	memCache := cache.NewStationCache(cacheCfg)

	var opts []FinderOption
	if cacheCfg.EnableNearestCache {
		opts = append(opts, WithNearestCache(cache.NewNearestCache(cacheCfg)))
	}

	if cfg.StationSource != config.StationSourceDynamo {
		log.Info().Msg("Using placeholder station list")
		return NewFinder(nil, memCache, opts...), nil
	}

	dynamoClient, err := cache.NewDynamoClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating DynamoDB client: %w", err)
	}
	table := cache.NewDynamoStationTable(dynamoClient, cfg.StationTable, cacheCfg)

	if cacheCfg.EnableS3Cache && cfg.StationBucket != "" {
		s3Client, err := cache.NewS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating S3 client: %w", err)
		}
		opts = append(opts, WithS3Cache(cache.NewS3StationCache(
			s3Client, cfg.StationBucket, cacheCfg.GetStationListTTL(), clockwork.NewRealClock(),
		)))
	}

	log.Info().
		Str("table", cfg.StationTable).
		Str("bucket", cfg.StationBucket).
		Msg("Using station registry")
	return NewFinder(table, memCache, opts...), nil
}
