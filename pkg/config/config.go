package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/modabuy/storefront-backend/pkg/env"
)

// Config is the full runtime configuration, loaded from STOREFRONT_*
// environment variables.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	GCP      GCPConfig
	PubSub   PubSubConfig
	Outbox   OutboxConfig
	Features FeatureFlags
}

type AppConfig struct {
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Port            int           `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	DSN      string `envconfig:"DB_DSN"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"storefront"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	Timeout  time.Duration `envconfig:"REDIS_TIMEOUT" default:"2s"`
}

type SessionConfig struct {
	CookieName   string        `envconfig:"SESSION_COOKIE_NAME" default:"session_id"`
	TTL          time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	CookieSecure bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
}

type CatalogConfig struct {
	ElasticURL     string        `envconfig:"ELASTIC_URL" default:"http://localhost:9200"`
	ProductIndex   string        `envconfig:"PRODUCT_INDEX" default:"products"`
	PITKeepAlive   string        `envconfig:"PIT_KEEP_ALIVE" default:"1m"`
	PageSize       int           `envconfig:"CATALOG_PAGE_SIZE" default:"20"`
	RequestTimeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"3s"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	OrdersTopic         string `envconfig:"PUBSUB_ORDERS_TOPIC" default:"sf-order-events"`
	CatalogTopic        string `envconfig:"PUBSUB_CATALOG_TOPIC" default:"sf-catalog-events"`
	CatalogSubscription string `envconfig:"PUBSUB_CATALOG_SUBSCRIPTION" default:"sf-catalog-indexer"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	BatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int           `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"8"`
}

type FeatureFlags struct {
	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"false"`
}

// Load reads configuration from the environment and assembles the DB DSN
// when it was given as discrete variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	cfg.DB.DSN = ensureDSN(cfg.DB)
	return &cfg, nil
}

func (c *Config) IsDev() bool  { return c.App.Env == AppEnvDev }
func (c *Config) IsProd() bool { return c.App.Env == AppEnvProd }

func ensureDSN(db DBConfig) string {
	if db.DSN != "" {
		return db.DSN
	}
	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = env.Get(EnvDBSSLMode, "disable")
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, sslMode,
	)
}
