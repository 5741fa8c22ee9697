package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rs/zerolog/log"
)

// DynamoDBClient is the slice of the DynamoDB API the station table uses
type DynamoDBClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// StationSource is anything that can produce the authoritative station list
type StationSource interface {
	ListStations(ctx context.Context) ([]models.Station, error)
}

// DynamoStationTable is the station registry: the live source the
// placeholder list stands in for.
type DynamoStationTable struct {
	client     DynamoDBClient
	tableName  string
	config     *config.CacheConfig
	retryDelay time.Duration
}

var _ StationSource = (*DynamoStationTable)(nil)

func NewDynamoStationTable(client DynamoDBClient, tableName string, cacheConfig *config.CacheConfig) *DynamoStationTable {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &DynamoStationTable{
		client:     client,
		tableName:  tableName,
		config:     cacheConfig,
		retryDelay: 100 * time.Millisecond,
	}
}

// ListStations scans the whole table. Records that fail validation are
// skipped and logged rather than failing the scan.
func (t *DynamoStationTable) ListStations(ctx context.Context) ([]models.Station, error) {
	var (
		stations []models.Station
		startKey map[string]types.AttributeValue
	)

	for {
		out, err := t.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(t.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scanning station table: %w", err)
		}

		var page []models.Station
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling station records: %w", err)
		}

		for _, s := range page {
			if err := s.Validate(); err != nil {
				log.Warn().Err(err).Str("station_id", s.ID).Msg("Skipping invalid station record")
				continue
			}
			stations = append(stations, s)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	log.Debug().Int("station_count", len(stations)).Str("table", t.tableName).Msg("Loaded stations from DynamoDB")
	return stations, nil
}

// SaveStations writes stations in batches, retrying unprocessed items
func (t *DynamoStationTable) SaveStations(ctx context.Context, stations []models.Station) error {
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("invalid station record: %w", err)
		}
	}

	batchSize := t.config.BatchSize
	for i := 0; i < len(stations); i += batchSize {
		end := i + batchSize
		if end > len(stations) {
			end = len(stations)
		}

		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, s := range stations[i:end] {
			item, err := attributevalue.MarshalMap(s)
			if err != nil {
				return fmt.Errorf("marshaling station record: %w", err)
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := t.writeBatch(ctx, writeRequests); err != nil {
			return err
		}
	}

	log.Info().Int("station_count", len(stations)).Str("table", t.tableName).Msg("Saved stations to DynamoDB")
	return nil
}

func (t *DynamoStationTable) writeBatch(ctx context.Context, pending []types.WriteRequest) error {
	var lastErr error
	for retry := 0; retry <= t.config.MaxBatchRetries; retry++ {
		if retry > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(1<<(retry-1)) * t.retryDelay):
			}
		}

		out, err := t.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				t.tableName: pending,
			},
		})
		if err != nil {
			lastErr = err
			continue
		}

		pending = out.UnprocessedItems[t.tableName]
		if len(pending) == 0 {
			return nil
		}
		lastErr = fmt.Errorf("%d unprocessed items", len(pending))
	}

	return fmt.Errorf("batch writing stations after %d retries: %w", t.config.MaxBatchRetries, lastErr)
}
