package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/database/seeders"
	"github.com/shashiranjanraj/vastra/internal/server"
	"github.com/shashiranjanraj/vastra/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// vastra seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalCtx()
		defer stop()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx)
		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB())
	},
}

// vastra db:index
var indexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes the application relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalCtx()
		defer stop()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx)
		fmt.Println("Ensuring indexes…")
		return server.EnsureIndexes(ctx)
	},
}
