package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port            string
	StoreDriver     string
	MongoURL        string
	MongoDB         string
	TokenSecret     string
	TokenTTL        time.Duration
	StripeSecretKey string
	Currency        string
	CORSOrigins     []string
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:            get("PORT", "5000"),
		StoreDriver:     strings.ToLower(get("STORE_DRIVER", DriverMongo)),
		MongoURL:        get("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:         get("MONGO_DB", "tool-facturer"),
		TokenSecret:     getenv("ACCESS_TOKEN_SECRET"),
		StripeSecretKey: getenv("STRIPE_SECRET_KEY"),
		Currency:        strings.ToLower(get("PAYMENT_CURRENCY", "usd")),
		CORSOrigins:     splitList(get("CORS_ORIGINS", "*")),
	}

	if user, pass := getenv("DB_USER"), getenv("DB_PASSWORD"); user != "" && pass != "" && getenv("MONGO_URL") == "" {
		host := get("DB_HOST", "localhost:27017")
		cfg.MongoURL = fmt.Sprintf("mongodb://%s:%s@%s", url.QueryEscape(user), url.QueryEscape(pass), host)
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "1h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	if cfg.TokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is not set")
	}
	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverMemory {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
