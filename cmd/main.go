package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	configs "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/config"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/handler"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/middleware"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/router"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/service"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openBackends(ctx, config)
	if err != nil {
		stores.Close(context.Background())
		logger.GetLogger().Fatal("Failed to initialise storage", zap.Error(err))
	}

	// Services
	tokenService, err := service.NewTokenService(config.JWT.Secret, config.Auth.SessionTTL)
	if err != nil {
		stores.Close(context.Background())
		logger.GetLogger().Fatal("Failed to initialise token service", zap.Error(err))
	}
	sessionStore := service.NewSessionStore(stores.sessions)
	authService := service.NewAuthService(
		stores.users,
		sessionStore,
		tokenService,
		service.NewPasswordHasher(config.Auth.BcryptCost),
	).WithTrialDuration(config.Auth.TrialDuration)

	go service.NewSessionReaper(sessionStore, config.Auth.SweepInterval).Run(ctx)

	r := router.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewHealthHandler(constants.AppVersion, stores.health...),

		middleware.NewValidationMiddleware(),
		middleware.NewAuthMiddleware(authService),
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: config.App.Timeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.GetLogger().Info("Shutting down server...")
	case err := <-serveErr:
		stop()
		stores.Close(context.Background())
		logger.GetLogger().Fatal("Failed to start server",
			zap.Error(err),
			zap.String("port", config.App.Port),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server shutdown failed", zap.Error(err))
	}
	stores.Close(shutdownCtx)
}
