package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret         string
	FileSigningSecret string
	ManagerEmail      string
	ManagerPassword   string
	UploadDir         string
	FrontendURL       string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] no .env file found, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	FileSigningSecret = GetEnv("FILE_SIGNING_SECRET", "change-this-secret")
	ManagerEmail = GetEnv("MANAGER_EMAIL", "manager@school.local")
	ManagerPassword = GetEnv("MANAGER_PASSWORD", "change-me")
	UploadDir = GetEnv("UPLOAD_DIR", "./uploads")
	FrontendURL = GetEnv("FRONTEND_URL", "http://localhost:3000")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
