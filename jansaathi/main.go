package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jansaathi/jansaathi/config"
	"jansaathi/jansaathi/controllers"
	"jansaathi/jansaathi/middlewares"
	"jansaathi/jansaathi/routes"
	"jansaathi/jansaathi/services/catalog"
	"jansaathi/jansaathi/services/llm"
	"jansaathi/jansaathi/sources/psql"
	"jansaathi/jansaathi/sources/psql/dao"
	"jansaathi/jansaathi/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	schemeDAO := dao.NewSchemeDAO(db.DB)
	catalogBuilder := catalog.NewBuilder(schemeDAO, cfg.ContextCacheTTL)
	gateway := llm.NewGatewayClient(cfg)
	limiter := middlewares.NewSlidingWindowLimiter(cfg.RateLimitPerWindow, cfg.RateLimitWindow, cfg.RateLimitSweepAt)

	chatCtrl := controllers.NewChatController(catalogBuilder, gateway)
	schemesCtrl := controllers.NewSchemesController(schemeDAO)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CORS)

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/schemes", routes.SchemeRoutes(schemesCtrl))
	r.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg, limiter))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
