package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER and SESSION_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Environment     string        `mapstructure:"environment"`
	Debug           bool          `mapstructure:"debug"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	TrialDuration time.Duration `mapstructure:"trial_duration"`
	BcryptCost    int           `mapstructure:"bcrypt_cost"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// StorageConfig selects the backends for users and sessions.
// SessionDriver falls back to Driver when empty.
type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	SessionDriver string `mapstructure:"session_driver"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	Enabled      bool          `mapstructure:"enabled"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type RateLimitConfig struct {
	Request  int `mapstructure:"request"`
	Duration int `mapstructure:"duration"`
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "auth-service"),
			Environment:     getEnv("APP_ENV", "development"),
			Port:            getEnv("APP_PORT", "8080"),
			Debug:           getEnvAsBool("APP_DEBUG", true),
			Timeout:         getEnvAsDuration("APP_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			SessionTTL:    getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
			TrialDuration: getEnvAsDuration("TRIAL_DURATION", 14*24*time.Hour),
			BcryptCost:    getEnvAsInt("BCRYPT_COST", 12),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Hour),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", DriverPostgres),
			SessionDriver: getEnv("SESSION_DRIVER", ""),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "auth_db"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DATABASE", "auth_db"),
			ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			Database:     getEnvAsInt("REDIS_DB", 0),
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getEnvAsDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			Request:  getEnvAsInt("RATE_LIMIT_MAX_REQUEST", 20),
			Duration: getEnvAsInt("RATE_LIMIT_DURATION", 60),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations the service cannot safely start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Auth.SessionTTL)
	}

	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.SessionDriver() {
	case DriverPostgres, DriverMongo, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unsupported SESSION_DRIVER %q", c.Storage.SessionDriver)
	}

	// auth_sessions.user_id references users(id).
	if c.SessionDriver() == DriverPostgres && c.Storage.Driver != DriverPostgres {
		return fmt.Errorf("SESSION_DRIVER=postgres requires STORAGE_DRIVER=postgres, got %q", c.Storage.Driver)
	}

	return nil
}

// SessionDriver returns the effective session backend.
func (c *Config) SessionDriver() string {
	if c.Storage.SessionDriver != "" {
		return c.Storage.SessionDriver
	}
	return c.Storage.Driver
}

// NeedsRedis reports whether a Redis connection has to be opened.
func (c *Config) NeedsRedis() bool {
	return c.Redis.Enabled || c.SessionDriver() == DriverRedis
}

// NeedsMongo reports whether a MongoDB connection has to be opened.
func (c *Config) NeedsMongo() bool {
	return c.Storage.Driver == DriverMongo || c.SessionDriver() == DriverMongo
}

// NeedsPostgres reports whether a PostgreSQL connection has to be opened.
func (c *Config) NeedsPostgres() bool {
	return c.Storage.Driver == DriverPostgres || c.SessionDriver() == DriverPostgres
}

func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
