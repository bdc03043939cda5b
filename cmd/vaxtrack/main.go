package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mstanchev/vaxtrack/internal/config"
	"github.com/mstanchev/vaxtrack/internal/db"
	"github.com/mstanchev/vaxtrack/internal/handler"
	"github.com/mstanchev/vaxtrack/internal/job"
	"github.com/mstanchev/vaxtrack/internal/middleware"
	"github.com/mstanchev/vaxtrack/internal/repo"
	"github.com/mstanchev/vaxtrack/internal/schedule"
	"github.com/mstanchev/vaxtrack/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "vaxtrack",
		Short: "vaccine shipment listing server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the vaxtrack server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info("starting server", zap.Int("port", cfg.Port))

	userRepo := repo.NewUserRepo(conn)
	listingRepo := repo.NewListingRepo(conn)
	sessionRepo := repo.NewSessionRepo(conn)

	sessionTTL := time.Hour * time.Duration(cfg.SessionTTLHours)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	sessionService := service.NewSessionService(sessionRepo, sessionTTL)
	listingService := service.NewListingService(listingRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionCleanupJob(sessionService), cfg.SessionCleanSpec); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(cfg.CORSAllowOrigins))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	handler.RegisterRoutes(engine, handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService, sessionService, sessionTTL),
		Listings:    handler.NewListingHandler(listingService, authService),
		API:         handler.NewAPIHandler(authService, listingService),
		Sessions:    sessionService,
		JWTSecret:   []byte(cfg.JWTSecret),
		LoginWindow: time.Duration(cfg.LoginRateLimitMS) * time.Millisecond,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
