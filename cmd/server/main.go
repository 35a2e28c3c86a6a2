package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockquote/internal/app"
	"stockquote/internal/config"
	"stockquote/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	// Bad credentials are not fatal: the chain degrades to the next source.
	for _, err := range cfg.Validate() {
		logger.Warn("config problem", zap.Error(err))
	}

	resolver, err := app.NewResolver(cfg, logger)
	if err != nil {
		logger.Fatal("build resolver failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	if cfg.Log.Development {
		gin.SetMode(gin.DebugMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           NewServer(resolver, cfg.Server, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec)*time.Second + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}
