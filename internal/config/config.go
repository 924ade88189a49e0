package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

const DefaultResetURLBase = "https://leave-management-systm.netlify.app/reset-password/"

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver      string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	// JWTSecret may be empty; token operations then fail at request time.
	JWTSecret []byte

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	ResetURLBase string

	KafkaBrokers []string
}

// LoadDotEnv reads the given files (".env" by default) into the process environment.
// A missing file is not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		slog.Info("env file not loaded, using process environment", "error", err)
	}
}

func Load() Config {
	username := os.Getenv("SMTP_USERNAME")
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "leave-service"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:      strings.ToLower(EnvDefault("DB_DRIVER", DriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: EnvDefault("MONGO_DATABASE", "leave_management"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		SMTPHost:     EnvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     EnvIntDefault("SMTP_PORT", 587),
		SMTPUsername: username,
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     EnvDefault("MAIL_FROM", username),
		ResetURLBase: EnvDefault("RESET_URL_BASE", DefaultResetURLBase),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}
}

func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("missing required env DATABASE_URL for driver %q", c.DBDriver))
		}
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("missing required env MONGO_URI"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUsername != ""
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
