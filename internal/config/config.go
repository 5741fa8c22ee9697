package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	StationSourceStatic = "static"
	StationSourceDynamo = "dynamo"

	DefaultTileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultTileAttribution = "&copy; OpenStreetMap contributors"
)

type Config struct {
	Environment     string
	LogLevel        zerolog.Level
	HTTPTimeout     time.Duration
	MaxRetries      int
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// AuthBaseURL is the authentication service the signup form posts to
	AuthBaseURL string

	TileURL         string
	TileAttribution string

	StationSource string
	StationBucket string
	StationTable  string

	MapSessionLimit int
	MapSessionTTL   time.Duration
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithHTTPAddr(addr string) Option {
	return func(c *Config) {
		c.HTTPAddr = addr
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ShutdownTimeout = timeout
	}
}

func WithAuthBaseURL(url string) Option {
	return func(c *Config) {
		c.AuthBaseURL = url
	}
}

// WithTiles sets the tile URL template and its attribution line
func WithTiles(urlTemplate, attribution string) Option {
	return func(c *Config) {
		c.TileURL = urlTemplate
		c.TileAttribution = attribution
	}
}

// WithStationSource selects where the station list comes from. Unknown
// values fall back to the static placeholder list.
func WithStationSource(source string) Option {
	return func(c *Config) {
		switch source {
		case StationSourceDynamo:
			c.StationSource = source
		default:
			c.StationSource = StationSourceStatic
		}
	}
}

func WithStationStorage(bucket, table string) Option {
	return func(c *Config) {
		c.StationBucket = bucket
		c.StationTable = table
	}
}

func WithMapSessions(limit int, ttl time.Duration) Option {
	return func(c *Config) {
		if limit > 0 {
			c.MapSessionLimit = limit
		}
		if ttl > 0 {
			c.MapSessionTTL = ttl
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:     "production",
		LogLevel:        zerolog.InfoLevel,
		HTTPTimeout:     10 * time.Second,
		MaxRetries:      3,
		HTTPAddr:        ":8080",
		ShutdownTimeout: 10 * time.Second,
		AuthBaseURL:     "http://localhost:8000",
		TileURL:         DefaultTileURL,
		TileAttribution: DefaultTileAttribution,
		StationSource:   StationSourceStatic,
		StationTable:    "rainwise-stations",
		MapSessionLimit: 1000,
		MapSessionTTL:   30 * time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// IsLocal reports whether the process runs on a developer machine
func (c *Config) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "development"
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.IsLocal() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithHTTPAddr(getEnvOrDefault("HTTP_ADDR", ":8080")),
		WithShutdownTimeout(getDurationEnvOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)),
		WithAuthBaseURL(getEnvOrDefault("AUTH_BASE_URL", "http://localhost:8000")),
		WithTiles(
			getEnvOrDefault("MAP_TILE_URL", DefaultTileURL),
			getEnvOrDefault("MAP_TILE_ATTRIBUTION", DefaultTileAttribution),
		),
		WithStationSource(getEnvOrDefault("STATION_SOURCE", StationSourceStatic)),
		WithStationStorage(os.Getenv("STATION_CACHE_BUCKET"), getEnvOrDefault("STATION_TABLE", "rainwise-stations")),
		WithMapSessions(
			getEnvInt("MAP_SESSION_LIMIT", 1000),
			getDurationEnvOrDefault("MAP_SESSION_TTL", 30*time.Minute),
		),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Warn().Str("key", key).Msg("Invalid duration value in environment variable, using default")
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
