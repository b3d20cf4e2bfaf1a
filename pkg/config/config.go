package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Mail      MailConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type MongoConfig struct {
	URI            string
	Database       string
	TimeoutSeconds int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *MongoConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (j *JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDevelopment() bool {
	return s.Env == "development"
}

func (s *ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// Enabled reports whether outgoing mail has somewhere to go.
func (m *MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

func (m *MailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "plantNet")
	v.SetDefault("MONGO_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_EXPIRY_HOURS", 365*24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("MAIL_PORT", 587)

	// Load from .env file if present
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := v.GetInt("SERVER_PORT")
	if p := v.GetInt("PORT"); p > 0 {
		port = p
	}

	// ACCESS_TOKEN_SECRET is the name older deployments use
	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		secret = v.GetString("ACCESS_TOKEN_SECRET")
	}
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: port,
			Env:  v.GetString("SERVER_ENV"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("MONGO_URI"),
			Database:       v.GetString("MONGO_DATABASE"),
			TimeoutSeconds: v.GetInt("MONGO_TIMEOUT_SECONDS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:      secret,
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Mail: MailConfig{
			Host:     v.GetString("MAIL_HOST"),
			Port:     v.GetInt("MAIL_PORT"),
			Username: v.GetString("MAIL_USERNAME"),
			Password: v.GetString("MAIL_PASSWORD"),
			From:     v.GetString("MAIL_FROM"),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
