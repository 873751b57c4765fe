package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "flota"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Env var names referenced from tests and deploy manifests.
const (
	EnvAppEnv     = "FLOTA_APP_ENV"
	EnvMongoURI   = "FLOTA_MONGO_URI"
	EnvMongoDB    = "FLOTA_MONGO_DATABASE"
	EnvCSVDir     = "FLOTA_ETL_CSV_DIR"
	EnvDocsRoot   = "FLOTA_ETL_DOCS_ROOT"
	EnvUseSQLite  = "FLOTA_USE_SQLITE"
	EnvSQLitePath = "FLOTA_SQLITE_PATH"
)

type Config struct {
	App          AppConfig
	ETL          ETLConfig
	Mongo        MongoConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validateSink(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FLOTA_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"FLOTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLOTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ETLConfig struct {
	// CSVDir holds the per-source delimited exports, one file per known source.
	CSVDir string `envconfig:"FLOTA_ETL_CSV_DIR" default:"Archivos_CSV"`
	// DocsRoot is the digital-document tree: one subdirectory per plate.
	DocsRoot string `envconfig:"FLOTA_ETL_DOCS_ROOT" default:"Documentos-Digitales"`
	// RunInterval drives the etl-worker loop; the one-shot binary ignores it.
	RunInterval time.Duration `envconfig:"FLOTA_ETL_RUN_INTERVAL" default:"24h"`
	// InvalidSampleLimit caps how many offending raw values the run summary
	// keeps per diagnostic category.
	InvalidSampleLimit int `envconfig:"FLOTA_ETL_INVALID_SAMPLE_LIMIT" default:"5"`
}

type MongoConfig struct {
	URI            string        `envconfig:"FLOTA_MONGO_URI"`
	Database       string        `envconfig:"FLOTA_MONGO_DATABASE" default:"MacSeguridadFlota"`
	ConnectTimeout time.Duration `envconfig:"FLOTA_MONGO_CONNECT_TIMEOUT" default:"10s"`
	WriteTimeout   time.Duration `envconfig:"FLOTA_MONGO_WRITE_TIMEOUT" default:"2m"`
}

type FeatureFlagsConfig struct {
	// UseSQLite swaps the Mongo sink for the embedded SQLite document sink,
	// mainly for local development without an Atlas cluster.
	UseSQLite  bool   `envconfig:"FLOTA_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"FLOTA_SQLITE_PATH" default:"flota.db"`
}

func (c *Config) validateSink() error {
	if c.FeatureFlags.UseSQLite {
		if c.FeatureFlags.SQLitePath == "" {
			return fmt.Errorf("%s is required when %s is set", EnvSQLitePath, EnvUseSQLite)
		}
		return nil
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("either %s or %s=true is required", EnvMongoURI, EnvUseSQLite)
	}
	return nil
}
