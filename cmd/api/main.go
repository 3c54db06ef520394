package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/mlegrand/equilog-backend/api/routes"
	"github.com/mlegrand/equilog-backend/internal/auth"
	"github.com/mlegrand/equilog-backend/internal/horses"
	"github.com/mlegrand/equilog-backend/internal/interventions"
	"github.com/mlegrand/equilog-backend/internal/movements"
	"github.com/mlegrand/equilog-backend/internal/professionals"
	"github.com/mlegrand/equilog-backend/internal/users"
	"github.com/mlegrand/equilog-backend/pkg/auth/session"
	"github.com/mlegrand/equilog-backend/pkg/config"
	"github.com/mlegrand/equilog-backend/pkg/db"
	"github.com/mlegrand/equilog-backend/pkg/logger"
	"github.com/mlegrand/equilog-backend/pkg/migrate"
	"github.com/mlegrand/equilog-backend/pkg/redis"
	"github.com/mlegrand/equilog-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	storageClient, err := gcs.NewClient(context.Background(), cfg.Storage, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	defer func() {
		closeErr := multierr.Combine(
			storageClient.Close(),
			redisClient.Close(),
			dbClient.Close(),
		)
		if closeErr != nil {
			logg.Error(context.Background(), "error closing clients", closeErr)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	movementsRepo := movements.NewRepository(dbClient.DB())

	horsesService, err := horses.NewService(horses.ServiceParams{
		Repo:          horses.NewRepository(dbClient.DB()),
		Detention:     movementsRepo,
		PhotoStore:    storageClient,
		StorageConfig: cfg.Storage,
		PhotosConfig:  cfg.Photos,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create horses service", err)
		os.Exit(1)
	}

	movementsService, err := movements.NewService(movements.ServiceParams{
		DB:     dbClient,
		Horses: horsesService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create movements service", err)
		os.Exit(1)
	}

	professionalsService, err := professionals.NewService(professionals.ServiceParams{
		DB:     dbClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create professionals service", err)
		os.Exit(1)
	}

	interventionsService, err := interventions.NewService(interventions.ServiceParams{
		Repo:   interventions.NewRepository(dbClient.DB()),
		Horses: horsesService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create interventions service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	router := routes.NewRouter(cfg, logg,
		routes.Dependencies{
			DB:       dbClient,
			Redis:    redisClient,
			Storage:  storageClient,
			Sessions: sessionManager,
			Registry: prometheus.NewRegistry(),
		},
		routes.Services{
			Auth:          authService,
			Horses:        horsesService,
			Movements:     movementsService,
			Professionals: professionalsService,
			Interventions: interventionsService,
		},
	)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
