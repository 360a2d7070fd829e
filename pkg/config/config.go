package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the app.
const EnvPrefix = "FERIA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
	Password PasswordConfig
	Weather  WeatherConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FERIA_APP_ENV" required:"true"`
	Port         string `envconfig:"FERIA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FERIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FERIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FERIA_DB_DSN"`
	Driver string `envconfig:"FERIA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FERIA_DB_HOST"`
	Port     int    `envconfig:"FERIA_DB_PORT" default:"5432"`
	User     string `envconfig:"FERIA_DB_USER"`
	Password string `envconfig:"FERIA_DB_PASSWORD"`
	Name     string `envconfig:"FERIA_DB_NAME"`
	SSLMode  string `envconfig:"FERIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FERIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FERIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FERIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FERIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"FERIA_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FERIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FERIA_REDIS_ADDR"`
	Password     string        `envconfig:"FERIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"FERIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FERIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FERIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FERIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FERIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	Secret     string        `envconfig:"FERIA_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"FERIA_SESSION_ISSUER" default:"feriadigital"`
	TTL        time.Duration `envconfig:"FERIA_SESSION_TTL" default:"12h"`
	CookieName string        `envconfig:"FERIA_SESSION_COOKIE" default:"feria_session"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FERIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FERIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FERIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FERIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FERIA_ARGON_KEY_LEN" default:"32"`
}

type WeatherConfig struct {
	APIKey      string        `envconfig:"FERIA_WEATHER_API_KEY"`
	BaseURL     string        `envconfig:"FERIA_WEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	CountryCode string        `envconfig:"FERIA_WEATHER_COUNTRY" default:"CL"`
	Language    string        `envconfig:"FERIA_WEATHER_LANG" default:"es"`
	Timeout     time.Duration `envconfig:"FERIA_WEATHER_TIMEOUT" default:"10s"`
	CacheTTL    time.Duration `envconfig:"FERIA_WEATHER_CACHE_TTL" default:"30m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"FERIA_DB_HOST": db.Host,
		"FERIA_DB_USER": db.User,
		"FERIA_DB_NAME": db.Name,
	}
	for _, env := range []string{"FERIA_DB_HOST", "FERIA_DB_USER", "FERIA_DB_NAME"} {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either FERIA_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
