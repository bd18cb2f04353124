package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DB     DBConfig
	MinIO  MinIOConfig
	Redis  RedisConfig
	Server ServerConfig
	Auth   AuthConfig
	Sync   SyncConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MinIOConfig struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

type RedisConfig struct {
	Addr          string
	Password      string
	ChannelPrefix string
}

type ServerConfig struct {
	Port string
}

type AuthConfig struct {
	// HostPassword is the shared password gating the host role. Only its
	// bcrypt hash is kept in memory after startup.
	HostPassword string
}

type SyncConfig struct {
	// ReloadDebounce is how long the store waits after a change notification
	// before reloading, so a burst of events costs one fetch.
	ReloadDebounce time.Duration
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "teamspace"),
			Password: getEnv("DB_PASSWORD", "teamspace_secret"),
			Name:     getEnv("DB_NAME", "teamspace"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MinIO: MinIOConfig{
			Endpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
			PublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
			AccessKey:      getEnv("MINIO_ACCESS_KEY", "teamspace"),
			SecretKey:      getEnv("MINIO_SECRET_KEY", "teamspace_secret"),
			Bucket:         getEnv("MINIO_BUCKET", "files"),
			UseSSL:         getEnvAsBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "localhost:6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			ChannelPrefix: getEnv("REDIS_CHANNEL_PREFIX", "teamspace:changes"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Auth: AuthConfig{
			HostPassword: getEnv("HOST_PASSWORD", "change-me-in-production"),
		},
		Sync: SyncConfig{
			ReloadDebounce: getEnvAsDuration("RELOAD_DEBOUNCE", 250*time.Millisecond),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
