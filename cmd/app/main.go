package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "gymgate/docs"
	"gymgate/internal/attendance"
	"gymgate/internal/config"
	"gymgate/internal/db"
	"gymgate/internal/gym"
	"gymgate/internal/logger"
	"gymgate/internal/membership"
	"gymgate/internal/occupancy"
	"gymgate/internal/server"
	"gymgate/internal/staff"
	"gymgate/internal/streak"
	"gymgate/internal/token"
)

// @title GymGate API
// @version 1.0
// @description Gym check-in, occupancy and attendance tracking service.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting GymGate")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counter := occupancy.NewCounter(redisClient)

	gymRepo := gym.NewRepository(database)
	gymService := gym.NewService(gymRepo, counter)

	staffRepo := staff.NewRepository(database)
	staffService := staff.NewService(staffRepo, cfg.JWTSecret)

	tokenRepo := token.NewRepository(database)
	tokenService := token.NewService(tokenRepo, cfg.EntryTokenTTL)

	streakRepo := streak.NewRepository(database)
	streakService := streak.NewService(streakRepo, cfg.FreezeDaysPerMonth)
	streakQueue := streak.NewQueue(redisClient, streakService)
	go streakQueue.Start(ctx)
	logger.Info("Streak worker started")

	oracle := membership.NewClient(cfg.MembershipURL, cfg.MembershipTimeout)

	attendanceRepo := attendance.NewRepository(database)
	attendanceService := attendance.NewService(
		attendanceRepo,
		tokenService,
		oracle,
		counter,
		gymRepo,
		streakQueue,
		cfg.MembershipTimeout,
	)

	reconciler := occupancy.NewReconciler(counter, attendanceRepo, gymRepo, cfg.ReconcileInterval)
	go reconciler.Run(ctx)
	logger.Info("Occupancy reconciler started", "interval", cfg.ReconcileInterval)

	srv := server.New(cfg, server.Handlers{
		Staff:      staff.NewHandler(staffService),
		Gym:        gym.NewHandler(gymService),
		Token:      token.NewHandler(tokenService),
		Attendance: attendance.NewHandler(attendanceService),
		Streak:     streak.NewHandler(streakService),
		Reconciler: reconciler,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
