package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/meetu-app/meetu-server/internal/application/config"
	"github.com/meetu-app/meetu-server/internal/application/constant"
	"github.com/meetu-app/meetu-server/internal/application/metric"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/handlers"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/server"
	"github.com/meetu-app/meetu-server/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: slog.LevelInfo},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	slog.Info("Running app", slog.Bool("debug", cfg.Debug))

	dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("connect to postgres", slog.Any(constant.Error, err))
		os.Exit(1)
	}
	defer dbConn.Close()

	txManager := postgres.NewTxManager(dbConn)
	userRepo := repository.NewUserRepo(dbConn)
	profileRepo := repository.NewProfileRepo(dbConn)
	roomRepo := repository.NewRoomRepo(dbConn)
	reportRepo := repository.NewReportRepo(dbConn)

	userUsecase := usecase.NewUserUsecase([]byte(cfg.JWTSecret), txManager, userRepo)
	profileUsecase := usecase.NewProfileUsecase(txManager, userRepo, profileRepo)
	roomUsecase := usecase.NewRoomUsecase(txManager, roomRepo, userRepo, profileRepo)
	reportUsecase := usecase.NewReportUsecase(txManager, userRepo, reportRepo)

	authHandler := handlers.NewAuthHandler(userUsecase)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	roomHandler := handlers.NewRoomHandler(roomUsecase)
	reportHandler := handlers.NewReportHandler(reportUsecase)
	adminHandler := handlers.NewAdminHandler(userUsecase, reportUsecase)

	echoSrv := server.New(cfg, userRepo, authHandler, profileHandler, roomHandler, reportHandler, adminHandler)

	metricsSrv := metric.NewServer()

	echoSrvCh := make(chan error, 1)
	metricsSrvCh := make(chan error, 1)

	go func() {
		echoSrvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	go func() {
		metricsSrvCh <- metricsSrv.Start(":" + cfg.MetricPort)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers due to context cancel")
	case err := <-echoSrvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	case err := <-metricsSrvCh:
		slog.Error(
			"Metrics server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
	}

	if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}
}
