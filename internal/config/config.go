package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	HTTPPort string
	LogLevel string

	StorageBackend   string
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	PostgresSSLMode  string

	OperatorWorkers int

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AppURL       string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// In all cases the default behavior should be for the docker compose setup.
var defaults = map[string]any{
	"http_port":         "9446",
	"log_level":         "info",
	"storage_backend":   BackendPostgres,
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"postgres_sslmode":  "disable",
	"operator_workers":  4,
	"jwt_ttl":           "720h",
	"smtp_port":         587,
	"app_url":           "http://localhost:5173",
	"amqp_exchange":     "money_manager",
	"amqp_queue":        "transaction_events",
}

// ProcessEnvironmentVariables layers defaults, the optional YAML file named by
// CONFIG_FILE, a local .env file and finally the process environment.
func ProcessEnvironmentVariables() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProcessPostgresVariables loads the same layers but only checks the
// Postgres connection settings, for tools that never serve requests.
func ProcessPostgresVariables() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if problems := cfg.postgresProblems(); len(problems) > 0 {
		return nil, validationError(problems)
	}
	return cfg, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{
		HTTPPort:         k.String("http_port"),
		LogLevel:         k.String("log_level"),
		StorageBackend:   strings.ToLower(k.String("storage_backend")),
		PostgresAddress:  k.String("postgres_address"),
		PostgresPort:     k.String("postgres_port"),
		PostgresDB:       k.String("postgres_db"),
		PostgresUsername: k.String("postgres_username"),
		PostgresPassword: k.String("postgres_password"),
		PostgresSSLMode:  k.String("postgres_sslmode"),
		OperatorWorkers:  k.Int("operator_workers"),
		JWTSecret:        k.String("jwt_secret"),
		JWTTTL:           k.Duration("jwt_ttl"),
		SMTPHost:         k.String("smtp_host"),
		SMTPPort:         k.Int("smtp_port"),
		SMTPUsername:     k.String("smtp_username"),
		SMTPPassword:     k.String("smtp_password"),
		SMTPFrom:         k.String("smtp_from"),
		AppURL:           strings.TrimRight(k.String("app_url"), "/"),
		AMQPURL:          k.String("amqp_url"),
		AMQPExchange:     k.String("amqp_exchange"),
		AMQPQueue:        k.String("amqp_queue"),
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid http port '%s': must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid http port %d: must be between 1 and 65535", port))
	}

	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		problems = append(problems, c.postgresProblems()...)
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of [%s %s]",
			c.StorageBackend, BackendPostgres, BackendMemory))
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, "operator workers must be at least 1")
	}
	if len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 characters")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, "JWT_TTL must be positive")
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		problems = append(problems, "SMTP_FROM is required when SMTP_HOST is set")
	}

	if len(problems) > 0 {
		return validationError(problems)
	}
	return nil
}

func (c *Config) postgresProblems() []string {
	if c.PostgresAddress == "" || c.PostgresDB == "" {
		return []string{"postgres backend requires POSTGRES_ADDRESS and POSTGRES_DB"}
	}
	return nil
}

func validationError(problems []string) error {
	return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(c.PostgresSSLMode),
	}
	return u.String()
}
