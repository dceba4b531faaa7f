package main

import (
	"context"
	"flag"

	"go-furniture-erp/internal/config"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/pkg/database"
	"go-furniture-erp/pkg/logger"

	"github.com/google/uuid"
)

// Resets a user's password and ends their current session.
//
//	go run ./cmd/reset-password -email admin@example.com -password admin123
func main() {
	email := flag.String("email", "admin@example.com", "account to reset")
	password := flag.String("password", "admin123", "new password (min 6 characters)")
	flag.Parse()

	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)
	log := logger.Get().WithField("email", *email)

	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByEmail(ctx, *email)
	if err != nil {
		log.WithError(err).Fatal("user not found")
	}
	if err := user.SetPassword(*password); err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	user.TokenVersion = uuid.New().String()
	user.UpdatedBy = "reset-password"

	if err := userRepo.Update(ctx, user); err != nil {
		log.WithError(err).Fatal("failed to update password")
	}
	log.Info("password reset")
}
