package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagdasarian/crm-service/internal/config"
	"github.com/bagdasarian/crm-service/internal/db"
	"github.com/bagdasarian/crm-service/internal/handler"
	"github.com/bagdasarian/crm-service/internal/handler/server"
	"github.com/bagdasarian/crm-service/internal/logger"
	"github.com/bagdasarian/crm-service/internal/presence"
	"github.com/bagdasarian/crm-service/internal/repository/postgres"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"github.com/bagdasarian/crm-service/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	database := db.MustLoad(cfg)
	lg.Info("connected to database", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))
	defer database.Close()

	if cfg.Database.RunMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		applied, err := db.Migrate(ctx, database)
		cancel()
		if err != nil {
			lg.Fatal("migrations failed", zap.Error(err))
		}
		lg.Info("migrations applied", zap.Strings("versions", applied))
	}

	clock := scheduler.SystemClock
	loc := cfg.Scheduler.Location

	teamRepo := postgres.NewTeamRepository(database)
	userRepo := postgres.NewUserRepository(database)
	taskRepo := postgres.NewTaskRepository(database)
	clientRepo := postgres.NewClientRepository(database)

	userService := service.NewUserService(userRepo, cfg.Admin, cfg.Auth.BcryptCost, clock, lg)
	teamService := service.NewTeamService(teamRepo, clock, lg)
	taskService := service.NewTaskService(taskRepo, teamRepo, clock, loc, lg)
	clientService := service.NewClientService(clientRepo, clock)
	crmService := service.NewCRMService(teamService, clientService, userRepo, taskRepo, clock, loc, lg)

	sweeper := scheduler.NewSweeper(taskRepo, clock, loc, lg, cfg.Scheduler.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	poller := presence.NewPoller(userService, clock, lg, cfg.Scheduler.PresenceInterval)
	poller.Start()
	defer poller.Stop()

	sessionKey, err := handler.ResolveSessionKey(cfg.Session.Key, cfg.Env != "prod", lg)
	if err != nil {
		lg.Fatal("invalid session configuration", zap.Error(err))
	}

	sessions, err := handler.NewSessionManager(sessionKey, cfg.Session.Name, cfg.Env == "prod", lg)
	if err != nil {
		lg.Fatal("failed to init session store", zap.Error(err))
	}

	h := handler.NewHandler(userService, teamService, taskService, clientService, crmService, poller, sessions, loc, lg)
	srv := server.NewServer(h, cfg.HTTP.Addr, cfg.HTTP.CORSOrigins, lg)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}
}
