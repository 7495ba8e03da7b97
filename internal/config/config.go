package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Editing run.
	InputFile   string
	ResultFile  string
	ClearScreen bool

	// Conflict comparison.
	UntranslatedFile string
	TranslatedFile   string
	CompareOutput    string

	LogLevel string
	LogFile  string

	// Sync targets.
	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	WorkerCount   int
	BatchSize     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		InputFile:        getEnv("INPUT_FILE", "missing_translations.txt"),
		ResultFile:       getEnv("RESULT_FILE", "done.txt"),
		ClearScreen:      getEnvBool("CLEAR_SCREEN", true),
		UntranslatedFile: getEnv("UNTRANSLATED_FILE", "translations.txt"),
		TranslatedFile:   getEnv("TRANSLATED_FILE", "posttranslation.txt"),
		CompareOutput:    getEnv("COMPARE_OUTPUT", "compared_output.txt"),
		LogLevel:         getEnv("LOG_LEVEL", "warn"),
		LogFile:          getEnv("LOG_FILE", ""),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/rag_translator?sslmode=disable"),
		Neo4jURI:         getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:      getEnvInt("WORKER_COUNT", 4),
		BatchSize:        getEnvInt("BATCH_SIZE", 50),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
