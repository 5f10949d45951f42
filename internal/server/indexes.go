package server

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/pkg/database"
)

// EnsureIndexes creates the collection indexes the application relies
// on. Creation is idempotent, so it runs on every boot.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"sites": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		"admin_users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "site", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"categories": {
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "name", Value: 1}}, Options: unique},
		},
		"brands": {
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "name", Value: 1}}, Options: unique},
		},
		"products": {
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "category", Value: 1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		"site_contents": {
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "key", Value: 1}}, Options: unique},
		},
		"reviews": {
			{Keys: bson.D{{Key: "site", Value: 1}, {Key: "product", Value: 1}, {Key: "status", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
