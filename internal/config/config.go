package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Rabbit RabbitConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
	// Profile selects the assessment variant's scoring rule table
	// (marketing, product, hr, finance, ux).
	Profile string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RabbitConfig struct {
	URI      string
	Exchange string
}

type RedisConfig struct {
	Addr         string
	Password     string
	ReportTTLMin int
}

// Load reads the service configuration from the environment. MONGO_URI is the
// only required value; everything else has a default or is optional.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "6700"),
			AllowOrigins: splitEnv("ALLOW_ORIGINS", "http://localhost:3000"),
			Profile:      getEnv("ASSESSMENT_PROFILE", "marketing"),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnv("MONGO_DATABASE", "assessment_service"),
		},
		Rabbit: RabbitConfig{
			URI:      os.Getenv("RABBITMQ_URI"),
			Exchange: os.Getenv("RABBITMQ_EXCHANGE"),
		},
		Redis: RedisConfig{
			Addr:         os.Getenv("REDIS_ADDR"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			ReportTTLMin: getEnvInt("REPORT_CACHE_TTL_MINUTES", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
