package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env             string        `envconfig:"ENV" default:"development"`
	Port            string        `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	DefaultLanguage string        `envconfig:"DEFAULT_LANGUAGE" default:"en"`
	OwnerTokens     []string      `envconfig:"OWNER_TOKENS"`
	SnapshotEvery   time.Duration `envconfig:"SNAPSHOT_INTERVAL" default:"30s"`
	CartIdleTTL     time.Duration `envconfig:"CART_IDLE_TTL" default:"24h"`

	Database Database
	Kafka    Kafka
	Payment  Payment
}

// Database connection settings. DATABASE_URL wins over the individual variables.
// With neither set, snapshots stay in memory.
type Database struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type Kafka struct {
	Brokers string `envconfig:"KAFKA_BROKERS"`
	Topic   string `envconfig:"KAFKA_TOPIC" default:"order-events"`
}

type Payment struct {
	MinDelay    time.Duration `envconfig:"PAYMENT_MIN_DELAY" default:"1s"`
	MaxDelay    time.Duration `envconfig:"PAYMENT_MAX_DELAY" default:"3s"`
	Timeout     time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"15s"`
	SuccessRate float64       `envconfig:"PAYMENT_SUCCESS_RATE" default:"0.9"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	if c.Payment.MinDelay < 0 || c.Payment.MaxDelay < c.Payment.MinDelay {
		return fmt.Errorf("invalid payment delay range %s..%s", c.Payment.MinDelay, c.Payment.MaxDelay)
	}
	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must be positive")
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE must be between 0 and 1")
	}
	if c.SnapshotEvery <= 0 {
		return fmt.Errorf("SNAPSHOT_INTERVAL must be positive")
	}
	if c.CartIdleTTL <= 0 {
		return fmt.Errorf("CART_IDLE_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Enabled reports whether any database setting is present
func (d Database) Enabled() bool {
	return d.URL != "" || d.Host != ""
}

// ConnString builds the pgx connection string
func (d Database) ConnString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode), nil
}

// BrokerList splits KAFKA_BROKERS on commas
func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
