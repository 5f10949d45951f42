// Package server boots the application: configuration, MongoDB, Redis
// (with in-memory fallbacks), storage, the queue workers, the
// scheduler, the websocket hub, and the HTTP server itself.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/listeners"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/ephemeral"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/schedule"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// App is the wired application, ready to serve.
type App struct {
	Router *router.Router
	Deps   routes.Deps
}

// Build connects every backing service and wires the object graph.
// It does not start serving; Start does.
func Build(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	if err := database.Connect(ctx); err != nil {
		return nil, err
	}
	if config.AppEnv() == "production" {
		logger.UseHandler(logger.NewMongoHandler(database.Collection("logs")))
	}

	// Redis is optional: without it the ephemeral store and the queue
	// fall back to in-process implementations, which is fine for a
	// single instance.
	var ephStore ephemeral.Store
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("boot: redis unavailable, using in-memory fallbacks", "error", err)
		mem := ephemeral.NewMemoryStore()
		ephStore = mem
		schedule.Every(5).Minutes().Name("ephemeral:sweep").WithoutOverlapping().Run(func() {
			if n := mem.Sweep(); n > 0 {
				logger.Debug("ephemeral: swept expired entries", "count", n)
			}
		})
	} else {
		ephStore = ephemeral.NewRedisStore(cache.RDB, "vastra:ephemeral")
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	storage.Connect()

	queue.UseCollection(database.Collection("failed_jobs"))
	jobs.RegisterAll()

	hub := ws.NewHub()
	go hub.Run()
	listeners.Register(hub)

	sites := repositories.NewSiteRepository(database.Collection("sites"))
	admins := repositories.NewAdminUserRepository(database.Collection("admin_users"))
	users := repositories.NewUserRepository(database.Collection("users"))
	categories := repositories.NewCategoryRepository(database.Collection("categories"))
	brands := repositories.NewBrandRepository(database.Collection("brands"))
	products := repositories.NewProductRepository(database.Collection("products"))
	orders := repositories.NewOrderRepository(database.Collection("orders"))
	contents := repositories.NewContentRepository(database.Collection("site_contents"))
	reviews := repositories.NewReviewRepository(database.Collection("reviews"))

	deps := routes.Deps{
		Auth:     services.NewAuthService(admins, users),
		Register: services.NewRegisterService(users, ephStore, config.OTPTTL()),
		Scopes:   services.NewScopeResolver(sites),
		Sites:    services.NewSiteService(sites, categories, brands, products, orders, contents, reviews),
		Catalog:  services.NewCatalogService(categories, brands, products),
		Products: services.NewProductService(products, categories, brands),
		Orders:   services.NewOrderService(orders, products, sites, users),
		Contents: services.NewContentService(contents),
		Reviews:  services.NewReviewService(reviews, products),
		Stats:    services.NewStatsService(orders, products, users),
		Admins:   services.NewAdminService(admins),
		Uploads:  services.NewUploadService(),
		OrderHub: hub,
	}

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r, deps)

	return &App{Router: r, Deps: deps}, nil
}

// Start runs the wired application until ctx is cancelled, then shuts
// down gracefully.
func Start(ctx context.Context) error {
	app, err := Build(ctx)
	if err != nil {
		return err
	}

	if err := EnsureIndexes(ctx); err != nil {
		return err
	}

	queue.StartWorkers(ctx, 4)
	schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           app.Router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return database.Disconnect(shutdownCtx)
}
