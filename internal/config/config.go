// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Storage backend names accepted by FLEETOPS_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config holds all runtime settings.
type Config struct {
	Addr string `env:"FLEETOPS_ADDR" envDefault:":8080"`

	Backend    string `env:"FLEETOPS_BACKEND"     envDefault:"memory"`
	SQLitePath string `env:"FLEETOPS_SQLITE_PATH" envDefault:"fleetops.db"`
	MongoURI   string `env:"FLEETOPS_MONGO_URI"   envDefault:"mongodb://localhost:27017"`
	MongoDB    string `env:"FLEETOPS_MONGO_DB"    envDefault:"fleetops"`

	JWTSecret string        `env:"FLEETOPS_JWT_SECRET"`
	JWTExpiry time.Duration `env:"FLEETOPS_JWT_EXPIRY" envDefault:"24h"`

	MQTTBroker string `env:"FLEETOPS_MQTT_BROKER"`
	MQTTTopic  string `env:"FLEETOPS_MQTT_TOPIC" envDefault:"fleetops/telemetry/+"`

	// PersistTelemetry switches vehicle series from synthesized snapshots to
	// recorded events.
	PersistTelemetry bool `env:"FLEETOPS_PERSIST_TELEMETRY" envDefault:"false"`
	StrictRefs       bool `env:"FLEETOPS_STRICT_REFS"       envDefault:"false"`

	RefreshInterval time.Duration `env:"FLEETOPS_REFRESH_INTERVAL" envDefault:"30s"`

	LogLevel string `env:"FLEETOPS_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.Backend {
	case BackendMemory, BackendSQLite, BackendMongo:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	return cfg, nil
}
