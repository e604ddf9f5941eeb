// Command seed bootstraps an initial superAdmin account so a fresh
// deployment has a caller that can reach the user listing endpoints.
// It is idempotent: an existing username is left untouched.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"evently/internal/auth"
	"evently/internal/config"
	"evently/internal/db"
	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

func main() {
	username := os.Getenv("SEED_USERNAME")
	password := os.Getenv("SEED_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("SEED_USERNAME and SEED_PASSWORD must be set")
	}

	cfg := config.Load()
	ctx := context.Background()

	database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	users := repository.NewUserRepository(database)

	if _, err := users.FindByUsername(ctx, username); err == nil {
		log.Printf("user %q already exists, nothing to do", username)
		return
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		log.Fatalf("lookup user: %v", err)
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	created, err := users.Create(ctx, &model.User{
		FirstName: "Super",
		LastName:  "Admin",
		Email:     os.Getenv("SEED_EMAIL"),
		UserType:  model.RoleSuperAdmin,
		Username:  username,
		Password:  digest,
	})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}

	log.Printf("seeded superAdmin %q with id %s", username, created.ID.Hex())
}
