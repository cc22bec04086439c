package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "5000"
	defaultServiceName     = "locallawnpro-payments"
	defaultEnv             = "dev"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Port               string
	ServiceName        string
	Env                string
	StripeSecretKey    string
	StripeAPIBase      string
	RedisAddr          string
	CORSAllowedOrigins []string
	LogFile            string
	LokiURL            string
	OTLPEndpoint       string
	ShutdownTimeout    time.Duration
}

// Load reads an optional .env file and then the process environment. Values
// already present in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	return Config{
		Port:               getenvDefault("PORT", defaultPort),
		ServiceName:        getenvDefault("SERVICE_NAME", defaultServiceName),
		Env:                getenvDefault("ENV", defaultEnv),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		StripeAPIBase:      os.Getenv("STRIPE_API_BASE"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		CORSAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogFile:            os.Getenv("LOG_FILE"),
		LokiURL:            os.Getenv("LOKI_URL"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ShutdownTimeout:    secondsDefault("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeout),
	}, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func secondsDefault(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
