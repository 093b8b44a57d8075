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

	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadsConfig
	SignIn  SignInConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pathshala"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type UploadsConfig struct {
	// Dir is the local directory uploaded files are written to.
	Dir string `env:"UPLOADS_DIR, default=public/uploads"`
	// BaseURL is the URL prefix stored documents reference.
	BaseURL string `env:"UPLOADS_BASE_URL, default=/uploads"`
}

type SignInConfig struct {
	// MaxAttempts is the sign-in budget per email (and per IP) within Window.
	MaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`
}

// IsProduction controls production-only behaviour such as the session
// cookie's Secure attribute.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
