package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	IDClaimKey string
}

type Config struct {
	DB_URL      string
	Port        string
	JWT         JWTConfig
	Environment string
	CorsConfig  cors.Options
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:      getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		CorsConfig:  CorsConfig(),
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
			Issuer:     getEnv("JWT_ISSUER", "elevennote"),
			Audience:   getEnv("JWT_AUDIENCE", "elevennote"),
			IDClaimKey: getEnv("ID_CLAIM_KEY", "Id"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
