package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string
	APIPort string

	// CompilerBaseURL is the sandbox origin. Empty means same-origin behind
	// the deployment proxy; the default points at the local dev sandbox.
	CompilerBaseURL string
	// ProblemsBaseURL is the read-only problem metadata collaborator.
	ProblemsBaseURL string

	// BatchCaseDelay paces sequential batch cases to avoid overwhelming the
	// shared sandbox. Not load-bearing for correctness.
	BatchCaseDelay time.Duration

	SubmitLockTTL time.Duration
	ScratchTTL    time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		Env:             getEnv("APP_ENV", "development"),
		APIPort:         getEnv("API_PORT", "8080"),
		CompilerBaseURL: getEnv("COMPILER_API_URL", "http://localhost:5005"),
		ProblemsBaseURL: getEnv("PROBLEMS_API_URL", "http://localhost:3000"),
		BatchCaseDelay:  time.Duration(getEnvAsInt("BATCH_CASE_DELAY_MS", 300)) * time.Millisecond,
		SubmitLockTTL:   time.Duration(getEnvAsInt("SUBMIT_LOCK_TTL_SECONDS", 120)) * time.Second,
		ScratchTTL:      time.Duration(getEnvAsInt("SCRATCH_TTL_HOURS", 720)) * time.Hour,
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "user"),
		DBPassword:      getEnv("DB_PASSWORD", "password"),
		DBName:          getEnv("DB_NAME", "codearena_db"),
		DBSslMode:       getEnv("DB_SSLMODE", "disable"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
	}

	// Production builds sit behind the same origin as the sandbox proxy.
	if AppConfig.Env == "production" && os.Getenv("COMPILER_API_URL") == "" {
		AppConfig.CompilerBaseURL = ""
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
