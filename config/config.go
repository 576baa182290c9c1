package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreRedis    = "redis"
	StoreSheets   = "sheets"
)

// Classifier variants
const (
	ClassifierLexicon = "lexicon"
	ClassifierNeural  = "neural"
	ClassifierGenAI   = "genai"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"console"`

	Store         string `env:"STORE" default:"memory"`
	SQLitePath    string `env:"SQLITE_PATH" default:"feedback.db"`
	PostgresURI   string `env:"POSTGRES_URI"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" default:"campus_feedback"`
	RedisURI      string `env:"REDIS_URI"`
	RedisKey      string `env:"REDIS_KEY" default:"campus_feedback:records"`

	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`
	SheetsRange           string `env:"SHEETS_RANGE" default:"Sheet1!A:F"`

	Classifier        string        `env:"CLASSIFIER" default:"lexicon"`
	PolarityThreshold float64       `env:"POLARITY_THRESHOLD" default:"0.1"`
	NeutralThreshold  float64       `env:"NEUTRAL_THRESHOLD" default:"0.70"`
	LexiconFile       string        `env:"LEXICON_FILE"`
	InferenceURL      string        `env:"INFERENCE_URL"`
	InferenceToken    string        `env:"INFERENCE_TOKEN"`
	InferenceTimeout  time.Duration `env:"INFERENCE_TIMEOUT" default:"10s"`
	GenAIAPIKey       string        `env:"GENAI_API_KEY"`
	GenAIModel        string        `env:"GENAI_MODEL" default:"gemini-2.0-flash"`

	AdminPassword     string `env:"ADMIN_PASSWORD" default:"admin123"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	SubmitRatePerMinute int      `env:"SUBMIT_RATE_PER_MINUTE" default:"10"`
	AllowedOrigins      []string `env:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only enable behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" default:"false"`
}

// Load reads configuration from the environment, optionally seeded by a .env file
func Load() (*Config, error) {
	// A missing .env file is fine; the process environment still applies
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, &env.Options{SliceSep: ","}); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	normalize(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction reports whether the app runs with production hardening
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func normalize(cfg *Config) {
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Classifier = strings.ToLower(strings.TrimSpace(cfg.Classifier))
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins
}

func validate(cfg *Config) error {
	switch cfg.Store {
	case StoreMemory:
	case StoreSQLite:
		if cfg.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORE=sqlite")
		}
	case StorePostgres:
		if cfg.PostgresURI == "" {
			return errors.New("POSTGRES_URI is required when STORE=postgres")
		}
	case StoreMongo:
		if cfg.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE=mongo")
		}
	case StoreRedis:
		if cfg.RedisURI == "" {
			return errors.New("REDIS_URI is required when STORE=redis")
		}
	case StoreSheets:
		if cfg.SheetsSpreadsheetID == "" {
			return errors.New("SHEETS_SPREADSHEET_ID is required when STORE=sheets")
		}
	default:
		return fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	switch cfg.Classifier {
	case ClassifierLexicon:
	case ClassifierNeural:
		if cfg.InferenceURL == "" {
			return errors.New("INFERENCE_URL is required when CLASSIFIER=neural")
		}
	case ClassifierGenAI:
		if cfg.GenAIAPIKey == "" {
			return errors.New("GENAI_API_KEY is required when CLASSIFIER=genai")
		}
	default:
		return fmt.Errorf("unknown CLASSIFIER %q", cfg.Classifier)
	}

	if cfg.PolarityThreshold < 0 || cfg.PolarityThreshold >= 1 {
		return fmt.Errorf("POLARITY_THRESHOLD must be in [0, 1), got %v", cfg.PolarityThreshold)
	}
	if cfg.NeutralThreshold < 0 || cfg.NeutralThreshold > 1 {
		return fmt.Errorf("NEUTRAL_THRESHOLD must be in [0, 1], got %v", cfg.NeutralThreshold)
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	if cfg.SubmitRatePerMinute <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_MINUTE must be positive, got %d", cfg.SubmitRatePerMinute)
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	return nil
}
