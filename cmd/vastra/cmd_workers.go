package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

var queueWorkersFlag int

// vastra queue:work — run a standalone worker process. Requires Redis;
// the in-process memory driver only makes sense inside the server.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalCtx()
		defer stop()
		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx)
		if err := cache.Connect(ctx); err != nil {
			return fmt.Errorf("queue:work needs redis: %w", err)
		}
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		queue.UseCollection(database.Collection("failed_jobs"))
		jobs.RegisterAll()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 4
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 4, "Number of concurrent workers")
}
