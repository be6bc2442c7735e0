// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	APIs     APIsConfig     `mapstructure:"apis"`
	Fetchers FetchersConfig `mapstructure:"fetchers"`
	Search   SearchConfig   `mapstructure:"search"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	MetricsAddress string   `mapstructure:"metrics_address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- External API Configuration ---

// APIsConfig holds settings for external API integrations. Every credential
// is individually optional; a missing key disables the capability that needs
// it without breaking the search endpoint.
type APIsConfig struct {
	GenAI struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"genai"`

	ProductSearch struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"product_search"`

	ShoppingResults struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"shopping_results"`

	MapData struct {
		// Endpoints are tried in order; the free providers are unreliable so
		// redundancy is part of the contract.
		Endpoints []string `mapstructure:"endpoints"`
		RadiusM   int      `mapstructure:"radius_m"`
		Timeout   int      `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"map_data"`
}

// FetchersConfig holds scraping-fetcher settings.
type FetchersConfig struct {
	DirectSite struct {
		Enabled   bool   `mapstructure:"enabled"`
		BaseURL   string `mapstructure:"base_url"`
		UserAgent string `mapstructure:"user_agent"`
		Timeout   int    `mapstructure:"timeout"` // milliseconds
		MaxPages  int    `mapstructure:"max_pages"`
	} `mapstructure:"direct_site"`

	WebSearch struct {
		Enabled   bool     `mapstructure:"enabled"`
		Endpoints []string `mapstructure:"endpoints"`
		UserAgent string   `mapstructure:"user_agent"`
		Timeout   int      `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"web_search"`
}

// SearchConfig holds orchestration and summary policy knobs.
type SearchConfig struct {
	FetchTimeout int `mapstructure:"fetch_timeout"` // milliseconds, per fetcher
	HistoryLimit int `mapstructure:"history_limit"`

	DiscoveryCacheTTL  int `mapstructure:"discovery_cache_ttl"` // seconds
	DiscoveryCacheSize int `mapstructure:"discovery_cache_size"`

	// Best-value badge policy: rating floor and allowed deviation from the
	// average price. Demonstration heuristics, kept configurable.
	BestValueMinRating  float64 `mapstructure:"best_value_min_rating"`
	BestValuePriceBand  float64 `mapstructure:"best_value_price_band"`
	BestDealPriceFactor float64 `mapstructure:"best_deal_price_factor"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
