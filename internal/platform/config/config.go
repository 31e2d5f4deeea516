package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Exchange rate provider
	ExchangeRateAPIURL string
	ExchangeRateAPIKey string
	// RateTTL is the single source of the cache TTL: a fixed duration from
	// last_fetched_at after which a rate is considered expired.
	RateTTL time.Duration
	// RateFetchTimeout bounds each provider HTTP call so one slow call cannot
	// stall a whole refresh batch.
	RateFetchTimeout time.Duration
	// BaseCurrency is the triangulation pivot. Always refreshed even when no
	// payment method uses it.
	BaseCurrency string

	// RateLimit is the API rate limit in ulule/limiter format, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "fintrack-backend")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_TTL", "24h")
	viper.SetDefault("EXCHANGE_RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}

	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGE_RATE_API_URL")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. Rate refreshes will fail until configured.")
	}

	rateTTLStr := viper.GetString("EXCHANGE_RATE_TTL")
	rateTTL, err := time.ParseDuration(rateTTLStr)
	if err != nil {
		rateTTL = 24 * time.Hour
		log.Printf("Warning: Invalid value for EXCHANGE_RATE_TTL ('%s'). Defaulting to %s.\n", rateTTLStr, rateTTL)
	}
	cfg.RateTTL = rateTTL

	fetchTimeoutStr := viper.GetString("EXCHANGE_RATE_FETCH_TIMEOUT")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil {
		fetchTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for EXCHANGE_RATE_FETCH_TIMEOUT ('%s'). Defaulting to %s.\n", fetchTimeoutStr, fetchTimeout)
	}
	cfg.RateFetchTimeout = fetchTimeout

	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
