package seeders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/auth"
)

func init() {
	Register("super-admin", SeedSuperAdmin)
}

// SeedSuperAdmin creates the initial super_admin account. Credentials
// come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD; skipped when the
// email already exists.
func SeedSuperAdmin(ctx context.Context, db *mongo.Database) error {
	email := config.Get("SEED_ADMIN_EMAIL", "admin@vastra.local")
	password := config.Get("SEED_ADMIN_PASSWORD", "changeme123")

	col := db.Collection("admin_users")
	err := col.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = col.InsertOne(ctx, models.AdminUser{
		Email:     email,
		Password:  hash,
		Role:      models.RoleSuperAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
