package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Seed          SeedConfig
	Password      PasswordConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	Gemini        GeminiConfig
	Analytics     AnalyticsConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Analytics.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PACKFINDERZ_APP_ENV" required:"true"`
	Port         string `envconfig:"PACKFINDERZ_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PACKFINDERZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PACKFINDERZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SeedConfig points at an optional YAML catalog; the embedded seed is used when empty.
type SeedConfig struct {
	Path string `envconfig:"PACKFINDERZ_SEED_PATH"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PACKFINDERZ_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PACKFINDERZ_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PACKFINDERZ_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PACKFINDERZ_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PACKFINDERZ_ARGON_KEY_LEN" default:"32"`
}

// RedisConfig is optional; without a URL or address the login limiter is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"PACKFINDERZ_REDIS_URL"`
	Address      string        `envconfig:"PACKFINDERZ_REDIS_ADDR"`
	Password     string        `envconfig:"PACKFINDERZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"PACKFINDERZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PACKFINDERZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PACKFINDERZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PACKFINDERZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PACKFINDERZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PACKFINDERZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"PACKFINDERZ_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"PACKFINDERZ_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"PACKFINDERZ_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"PACKFINDERZ_GEMINI_API_KEY"`
	Model  string `envconfig:"PACKFINDERZ_GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// AnalyticsConfig carries the optional fixed "today" used by dashboard metrics.
type AnalyticsConfig struct {
	Today string `envconfig:"PACKFINDERZ_ANALYTICS_TODAY"`
}

// FixedToday returns the configured override date, if any.
func (a AnalyticsConfig) FixedToday() (time.Time, bool) {
	value := strings.TrimSpace(a.Today)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (a AnalyticsConfig) validate() error {
	value := strings.TrimSpace(a.Today)
	if value == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return fmt.Errorf("%s must be YYYY-MM-DD: %w", EnvAnalyticsToday, err)
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PACKFINDERZ_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
