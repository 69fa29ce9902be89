package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// External systems
	ArkivBaseURL          string
	SaksbehandlingBaseURL string
	FagsystemBaseURL      string
	OppgaveBaseURL        string
	PersondataBaseURL     string
	// Machine-to-machine bearer token used on outbound calls
	ServiceToken string
	// Other
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")

	serviceToken := getEnv("SERVICE_TOKEN", "")
	if serviceToken == "" && environment == "production" {
		log.Fatal("[CRITICAL] SERVICE_TOKEN must be set in production")
	}

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBPath:                getEnv("DB_PATH", "db/app.db"),
		Environment:           environment,
		ArkivBaseURL:          getEnv("ARKIV_BASE_URL", "http://localhost:8091"),
		SaksbehandlingBaseURL: getEnv("SAKSBEHANDLING_BASE_URL", "http://localhost:8092"),
		FagsystemBaseURL:      getEnv("FAGSYSTEM_BASE_URL", "http://localhost:8093"),
		OppgaveBaseURL:        getEnv("OPPGAVE_BASE_URL", "http://localhost:8094"),
		PersondataBaseURL:     getEnv("PERSONDATA_BASE_URL", "http://localhost:8095"),
		ServiceToken:          serviceToken,
		AllowedOrigins:        strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}
