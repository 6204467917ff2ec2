package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Reports  ReportsConfig  `yaml:"reports"`
	Events   EventsConfig   `yaml:"events"`
	Booking  BookingConfig  `yaml:"booking"`
	Logging  LoggingConfig  `yaml:"logging"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type DatabaseConfig struct {
	Host                  string `yaml:"host" validate:"required"`
	Port                  int    `yaml:"port" validate:"min=1,max=65535"`
	User                  string `yaml:"user" validate:"required"`
	Password              string `yaml:"password"`
	Name                  string `yaml:"name" validate:"required"`
	SSLMode               string `yaml:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns              int    `yaml:"max_conns" validate:"min=1"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds" validate:"min=1"`
}

// DSN renders a postgres:// URL. An empty password is left out entirely.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	q.Set("connect_timeout", strconv.Itoa(d.ConnectTimeoutSeconds))
	u.RawQuery = q.Encode()
	return u.String()
}

// Identity names the database as host:port/name, e.g. to keep cached data of
// different databases apart.
func (d DatabaseConfig) Identity() string {
	return fmt.Sprintf("%s:%d/%s", d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr" validate:"required_if=Enabled true"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
}

type ReportsConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" validate:"min=1"`
}

const (
	EventsDriverNone     = "none"
	EventsDriverKafka    = "kafka"
	EventsDriverRabbitMQ = "rabbitmq"
)

type EventsConfig struct {
	Driver  string   `yaml:"driver" validate:"oneof=none kafka rabbitmq"`
	Brokers []string `yaml:"brokers" validate:"required_if=Driver kafka"`
	Topic   string   `yaml:"topic" validate:"required_unless=Driver none"`
	GroupID string   `yaml:"group_id"`
	AMQPURL string   `yaml:"amqp_url" validate:"required_if=Driver rabbitmq"`
	Queue   string   `yaml:"queue" validate:"required_if=Driver rabbitmq"`
}

type BookingConfig struct {
	KeyRetryAttempts int `yaml:"key_retry_attempts" validate:"min=1,max=10"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

type WorkerConfig struct {
	HTTPAddress string `yaml:"http_address" validate:"required"`
	GRPCAddress string `yaml:"grpc_address" validate:"required"`
	FeedSize    int    `yaml:"feed_size" validate:"min=1"`
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// (skipped when it does not exist), a .env file and the process environment,
// in that order, and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration that is valid on its own: a local
// PostgreSQL, no cache and no event publishing.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:                  "localhost",
			Port:                  5432,
			User:                  "postgres",
			Name:                  "airline",
			SSLMode:               "disable",
			MaxConns:              1,
			ConnectTimeoutSeconds: 5,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Reports: ReportsConfig{
			CacheTTLSeconds: 60,
		},
		Events: EventsConfig{
			Driver:  EventsDriverNone,
			Topic:   "airops.events",
			GroupID: "airops-worker",
			Queue:   "airops.events",
		},
		Booking: BookingConfig{
			KeyRetryAttempts: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
		Worker: WorkerConfig{
			HTTPAddress: ":8081",
			GRPCAddress: ":9091",
			FeedSize:    100,
		},
	}
}

// Validate checks struct tags on every section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Database.MaxConns, "DB_MAX_CONNS"); err != nil {
		return err
	}

	if err := setBool(&cfg.Redis.Enabled, "REDIS_ENABLED"); err != nil {
		return err
	}
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.Events.Driver, "EVENTS_DRIVER")
	setString(&cfg.Events.Topic, "EVENTS_TOPIC")
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		cfg.Events.Brokers = splitList(v)
	}
	setString(&cfg.Events.AMQPURL, "RABBITMQ_URL")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	if err := setBool(&cfg.Logging.Pretty, "LOG_PRETTY"); err != nil {
		return err
	}

	setString(&cfg.Worker.HTTPAddress, "WORKER_HTTP_ADDRESS")
	setString(&cfg.Worker.GRPCAddress, "WORKER_GRPC_ADDRESS")
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid int for %s: %q", key, v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid bool for %s: %q", key, v)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
