package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Auth   AuthConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port  string
	Debug bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	SecretKey    string
	JWTSecret    string
	APIKeyPrefix string
}

type CORSConfig struct {
	Origins []string
}

// Default browser origins the front-end is served from; CORS_ORIGINS
// extends this list.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:3001",
	"https://retailgenie-1.onrender.com",
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SECRET_KEY", "dev-secret-key-change-in-production")
	viper.SetDefault("JWT_SECRET_KEY", "dev-jwt-secret-change-in-production")
	viper.SetDefault("API_KEY_PREFIX", "rg_")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:  viper.GetString("PORT"),
			Debug: viper.GetBool("DEBUG"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			SecretKey:    viper.GetString("SECRET_KEY"),
			JWTSecret:    viper.GetString("JWT_SECRET_KEY"),
			APIKeyPrefix: viper.GetString("API_KEY_PREFIX"),
		},
		CORS: CORSConfig{
			Origins: mergeOrigins(viper.GetString("CORS_ORIGINS")),
		},
	}
}

// mergeOrigins appends the comma-separated CORS_ORIGINS value to the
// default list, dropping blanks and duplicates while preserving order.
func mergeOrigins(csv string) []string {
	seen := make(map[string]bool, len(defaultOrigins))
	origins := make([]string, 0, len(defaultOrigins))
	for _, o := range defaultOrigins {
		if !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}
	for _, part := range strings.Split(csv, ",") {
		o := strings.TrimSpace(part)
		if o != "" && !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}
	return origins
}
