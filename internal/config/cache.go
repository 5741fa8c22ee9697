package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// In-memory station list
	StationMemoryTTLHours int

	// S3 cached station list
	StationListTTLDays int

	// Nearest-station lookup LRU
	NearestLRUSize       int
	NearestLRUTTLMinutes int

	// DynamoDB batch writes
	BatchSize       int
	MaxBatchRetries int

	EnableNearestCache bool
	EnableS3Cache      bool
}

const (
	defaultStationMemoryTTLHours = 24
	defaultStationListTTLDays    = 2
	defaultNearestLRUSize        = 5000
	defaultNearestTTLMinutes     = 60
	defaultBatchSize             = 25
	defaultMaxBatchRetries       = 3
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		StationMemoryTTLHours: getEnvInt("CACHE_STATION_MEMORY_TTL_HOURS", defaultStationMemoryTTLHours),
		StationListTTLDays:    getEnvInt("CACHE_STATION_LIST_TTL_DAYS", defaultStationListTTLDays),
		NearestLRUSize:        getEnvInt("CACHE_NEAREST_LRU_SIZE", defaultNearestLRUSize),
		NearestLRUTTLMinutes:  getEnvInt("CACHE_NEAREST_TTL_MINUTES", defaultNearestTTLMinutes),
		BatchSize:             getEnvInt("CACHE_BATCH_SIZE", defaultBatchSize),
		MaxBatchRetries:       getEnvInt("CACHE_MAX_BATCH_RETRIES", defaultMaxBatchRetries),
		EnableNearestCache:    getEnvBool("CACHE_ENABLE_NEAREST", true),
		EnableS3Cache:         getEnvBool("CACHE_ENABLE_S3", true),
	}

	// DynamoDB rejects batches above 25 items
	if config.BatchSize <= 0 || config.BatchSize > defaultBatchSize {
		log.Warn().Int("BatchSize", config.BatchSize).Msg("Batch size out of range, using default")
		config.BatchSize = defaultBatchSize
	}

	log.Debug().
		Int("StationMemoryTTLHours", config.StationMemoryTTLHours).
		Int("StationListTTLDays", config.StationListTTLDays).
		Int("NearestLRUSize", config.NearestLRUSize).
		Int("NearestLRUTTLMinutes", config.NearestLRUTTLMinutes).
		Int("BatchSize", config.BatchSize).
		Int("MaxBatchRetries", config.MaxBatchRetries).
		Bool("EnableNearestCache", config.EnableNearestCache).
		Bool("EnableS3Cache", config.EnableS3Cache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetStationMemoryTTL() time.Duration {
	return time.Duration(c.StationMemoryTTLHours) * time.Hour
}

func (c *CacheConfig) GetStationListTTL() time.Duration {
	return time.Duration(c.StationListTTLDays) * 24 * time.Hour
}

func (c *CacheConfig) GetNearestLRUTTL() time.Duration {
	return time.Duration(c.NearestLRUTTLMinutes) * time.Minute
}
