package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialhub/internal/api"
	"socialhub/internal/api/middleware"
	"socialhub/internal/database"
	"socialhub/pkg/factory"
)

func main() {
	appFactory, err := factory.NewFactory()
	if err != nil {
		fmt.Printf("failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()
	db := appFactory.GetDB()

	defer db.Close()

	log.Info("starting application", map[string]interface{}{"env": cfg.AppEnv})

	migrationService := database.NewMigrationService(db, log)
	if err := migrationService.RunMigrations(); err != nil {
		log.Fatal("failed to run migrations", map[string]interface{}{"error": err.Error()})
	}

	userHandler := api.NewUserHandler(
		appFactory.GetUserService(),
		appFactory.GetAuthService(),
		appFactory.GetPasswordResetService(),
		log,
	)
	postHandler := api.NewPostHandler(appFactory.GetPostService(), log)
	healthHandler := api.NewHealthHandler(db, log)

	mux := http.NewServeMux()

	userHandler.RegisterRoutes(mux)
	postHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: middleware.MetricsMiddleware(mux),
	}

	go func() {
		log.Info("starting HTTP server", map[string]interface{}{"port": cfg.Server.Port})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start HTTP server", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...", map[string]interface{}{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("failed to shut down server", map[string]interface{}{"error": err.Error()})
	}

	log.Info("server stopped", map[string]interface{}{})
}
