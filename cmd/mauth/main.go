package main

import (
	"context"
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
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/mauth/internal/config"
	"github.com/xxxsen/mauth/internal/handler"
	"github.com/xxxsen/mauth/internal/job"
	"github.com/xxxsen/mauth/internal/middleware"
	"github.com/xxxsen/mauth/internal/pkg/jwt"
	"github.com/xxxsen/mauth/internal/pkg/password"
	"github.com/xxxsen/mauth/internal/schedule"
	"github.com/xxxsen/mauth/internal/service"
	"github.com/xxxsen/mauth/internal/store"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mauth",
		Short: "mauth authentication server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run mauth server",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json; PORT and JWT_SECRET env vars override it")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("store", cfg.Store.Type),
		zap.Bool("backup", cfg.Backup.Enabled),
	)

	users, err := store.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	tokens, err := jwt.NewManager([]byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("init token manager: %w", err)
	}
	authService := service.NewAuthService(users, password.NewHasher(cfg.BcryptCost), tokens)

	deps := handler.RouterDeps{
		Auth:     handler.NewAuthHandler(authService),
		Verifier: authService,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Backup.Enabled {
		backupStore, err := store.New(cfg.Backup.Store)
		if err != nil {
			return fmt.Errorf("init backup store: %w", err)
		}
		scheduler := schedule.NewCronScheduler()
		if err := scheduler.AddJob(job.NewUsersBackupJob(users, backupStore), cfg.Backup.Spec); err != nil {
			return err
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
