package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Notion   NotionConfig
	Sync     SyncConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type NotionConfig struct {
	Token string `env:"NOTION_TOKEN" env-required:"true"`
	// DatabaseID is only needed for the startup backfill sweep;
	// the webhook and scanner address pages by id alone.
	DatabaseID     string        `env:"NOTION_DATABASE_ID"`
	RequestTimeout time.Duration `env:"NOTION_REQUEST_TIMEOUT" env-default:"10s"`
}

type SyncConfig struct {
	ScanInterval    time.Duration `env:"SYNC_SCAN_INTERVAL" env-default:"3s"`
	BackfillOnStart bool          `env:"SYNC_BACKFILL_ON_START" env-default:"false"`
}
