// Package database owns the MongoDB client for the application.
//
// Connect once at boot, then grab collections anywhere:
//
//	if err := database.Connect(ctx); err != nil { ... }
//	col := database.Collection("products")
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// DB returns the application database handle.
// Panics if Connect has not been called; that is a boot-order bug.
func DB() *mongo.Database {
	if db == nil {
		panic("database: Connect was not called")
	}
	return db
}

// Collection returns a named collection from the application database.
func Collection(name string) *mongo.Collection {
	return DB().Collection(name)
}

// Client exposes the raw client for components that need sessions
// or transactions.
func Client() *mongo.Client {
	if client == nil {
		panic("database: Connect was not called")
	}
	return client
}

// Disconnect closes the MongoDB connection.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
