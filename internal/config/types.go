package config

import "time"

const (
	defaultCacheTTL       = 5 * time.Minute
	defaultNetworkTimeout = 30 * time.Second
	defaultNetworkRetries = 3
)

// Config is the installation configuration stored in .distup/config.toml.
type Config struct {
	Repositories []RepositoryConfig `toml:"repositories"`
	Cache        CacheConfig        `toml:"cache"`
	Network      NetworkConfig      `toml:"network"`
}

// RepositoryConfig declares one repository channel. URL is an http(s) URL,
// a file:// URL, or a filesystem path (relative paths resolve against the
// installation root; a leading ~ expands to the home directory).
type RepositoryConfig struct {
	ID  string `toml:"id"`
	URL string `toml:"url"`
}

// CacheConfig controls repository lookup caching and downloaded content.
type CacheConfig struct {
	TTLSeconds *int   `toml:"ttl_seconds"`
	Dir        string `toml:"dir"`
}

// NetworkConfig controls remote repository requests.
type NetworkConfig struct {
	TimeoutSeconds int  `toml:"timeout_seconds"`
	Retries        *int `toml:"retries"`
}

// TTL returns the lookup cache lifetime. Zero disables caching.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds == nil {
		return defaultCacheTTL
	}
	return time.Duration(*c.TTLSeconds) * time.Second
}

// Timeout returns the per-request timeout.
func (n NetworkConfig) Timeout() time.Duration {
	if n.TimeoutSeconds <= 0 {
		return defaultNetworkTimeout
	}
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// MaxRetries returns how many times a transient remote failure is retried.
func (n NetworkConfig) MaxRetries() int {
	if n.Retries == nil {
		return defaultNetworkRetries
	}
	return *n.Retries
}
