package config

import (
	"time"
)

// CacheConfig defines settings for the task-list response cache.  When
// Enabled is false or no Redis client is configured, caching is disabled
// and every request goes straight to the database.  TTL bounds staleness
// between a write on one connection and a read on another; entries are
// invalidated eagerly on task mutations anyway.  Prefix namespaces keys
// so the cache can share a Redis with other deployments.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
