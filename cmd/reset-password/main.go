package main

import (
	"os"

	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/pkg/database"
	"go-jossydiva-api/pkg/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operational escape hatch: resets the admin password directly in the
// database when the account is locked out.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn().Msg(".env file not found, relying on system env")
	}

	db := database.ConnectDB()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@jossydiva.com"
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Log.Fatal().Err(err).Str("email", email).Msg("user not found in database")
	}

	newPassword := os.Getenv("ADMIN_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to hash password")
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": "",
	}).Error; err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to update password in DB")
	}

	logger.Log.Info().Str("email", email).Msg("password has been reset")
}
