package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	JWTSecret  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	// The auth package reads JWT_SECRET from the environment; export the
	// resolved value so tokens are signed and verified with the same secret.
	jwtSecret := getEnv("JWT_SECRET", "supersecretkey")
	os.Setenv("JWT_SECRET", jwtSecret)

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "famboard_user"),
		DBPassword: getEnv("DB_PASSWORD", "famboard_pass"),
		DBName:     getEnv("DB_NAME", "famboard_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  jwtSecret,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
