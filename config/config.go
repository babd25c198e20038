// Package config reads the print pricing service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	// RateLimit is the per-IP request budget for every route.
	RateLimit int
	// AccountRateLimit is the per-account budget for the quote routes.
	AccountRateLimit int
	RateWindow       time.Duration
	CORSOrigins      []string
	SwaggerUser      string
	SwaggerPass      string
	RequestTimeout   time.Duration
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig sizes the price calculation cache. Size zero disables it and
// Shards above one select the sharded cache.
type CacheConfig struct {
	Size   int
	TTL    time.Duration
	Shards int
}

// CatalogConfig holds catalog loading configuration.
type CatalogConfig struct {
	// File is an optional YAML catalog replacing the built-in default.
	File     string
	CacheTTL time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	// APIKeys holds plain keys or bcrypt hashes guarding the admin routes.
	APIKeys map[string]bool
	// BrokerTokenSecret enables broker bearer tokens when set.
	BrokerTokenSecret string
	BrokerTokenIssuer string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load reads the configuration. Unset or unparsable variables take their default.
func Load() Config {
	rateLimit := envOr("RATE_LIMIT", 100, strconv.Atoi)

	return Config{
		Server: ServerConfig{
			Port:             envOr("PORT", "8080", asString),
			RateLimit:        rateLimit,
			AccountRateLimit: envOr("ACCOUNT_RATE_LIMIT", rateLimit, strconv.Atoi),
			RateWindow:       envOr("RATE_WINDOW", time.Minute, time.ParseDuration),
			CORSOrigins:      parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:      os.Getenv("SWAGGER_USER"),
			SwaggerPass:      os.Getenv("SWAGGER_PASS"),
			RequestTimeout:   envOr("REQUEST_TIMEOUT", 30*time.Second, time.ParseDuration),
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info", asString),
			Pretty: envOr("LOG_PRETTY", false, strconv.ParseBool),
		},
		Cache: CacheConfig{
			Size:   envOr("CACHE_SIZE", 1000, strconv.Atoi),
			TTL:    envOr("CACHE_TTL", 5*time.Minute, time.ParseDuration),
			Shards: envOr("CACHE_SHARDS", 0, strconv.Atoi),
		},
		Catalog: CatalogConfig{
			File:     os.Getenv("CATALOG_FILE"),
			CacheTTL: envOr("CATALOG_CACHE_TTL", 30*time.Second, time.ParseDuration),
		},
		Auth: AuthConfig{
			Enabled:           envOr("AUTH_ENABLED", false, strconv.ParseBool),
			APIKeys:           splitList(os.Getenv("API_KEYS")),
			BrokerTokenSecret: os.Getenv("BROKER_TOKEN_SECRET"),
			BrokerTokenIssuer: envOr("BROKER_TOKEN_ISSUER", "print-pricing-service", asString),
		},
		Database: DatabaseConfig{
			URI:                            envOr("MONGODB_URI", "mongodb://localhost:27017", asString),
			DatabaseName:                   envOr("MONGODB_DATABASE", "print_pricing", asString),
			LogsTTL:                        envOr("MONGODB_LOGS_TTL", 30*24*time.Hour, time.ParseDuration),
			Enabled:                        envOr("MONGODB_ENABLED", false, strconv.ParseBool),
			CircuitBreakerFailureThreshold: envOr("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5, strconv.Atoi),
			CircuitBreakerSuccessThreshold: envOr("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2, strconv.Atoi),
			CircuitBreakerTimeout:          envOr("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second, time.ParseDuration),
		},
	}
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %q is not a TCP port", c.Server.Port))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("RATE_WINDOW must be positive when rate limiting is on"))
	}
	if c.Cache.Size < 0 {
		errs = append(errs, errors.New("CACHE_SIZE must not be negative"))
	}
	if c.Cache.Size > 0 && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive when the cache is on"))
	}
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, errors.New("AUTH_ENABLED needs at least one API_KEYS entry"))
	}
	if c.Database.Enabled && c.Database.URI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required when MONGODB_ENABLED is set"))
	}
	return errors.Join(errs...)
}

func asString(s string) (string, error) { return s, nil }

// envOr parses the variable key, returning def when it is unset or does not parse.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// splitList turns a comma separated list into a set, or nil when empty.
func splitList(s string) map[string]bool {
	var set map[string]bool
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		if set == nil {
			set = make(map[string]bool)
		}
		set[item] = true
	}
	return set
}

// parseCORSOrigins appends the configured origins to the local storefront dev servers.
func parseCORSOrigins(s string) []string {
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
