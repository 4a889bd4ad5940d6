package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// NotifyWorkers sizes the notification dispatcher's worker pool.
	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	Upstream UpstreamConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Linker   LinkerConfig
}

// UpstreamConfig points the gateway at the salon API.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:8084/api"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AMQPConfig is optional; an empty URL disables the broker sink.
type AMQPConfig struct {
	URL string `env:"AMQP_URL"`
}

// LinkerConfig tunes the guest-booking link reconciler.
type LinkerConfig struct {
	Spec        string `env:"LINKER_SPEC,         default=@every 5m"`
	MaxAttempts int    `env:"LINKER_MAX_ATTEMPTS, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
