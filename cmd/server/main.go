package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/investlog/internal/config"
	"github.com/investlog/internal/content"
	"github.com/investlog/internal/handler"
	"github.com/investlog/internal/router"
	"github.com/investlog/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	// 启动时同步读入整个内容树
	st := store.New()
	walker := content.NewWalker(logger)
	result, err := walker.Walk(cfg.ContentDir)
	if err != nil {
		logger.Fatal("failed to read content directory",
			zap.String("dir", cfg.ContentDir), zap.Error(err))
	}
	dropped := st.ReplaceAll(result.Posts)
	logger.Info("content imported",
		zap.Int("posts", st.Len()),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicates", dropped))

	api := handler.NewAPI(cfg, logger, st)
	r := router.SetupRouter(api, cfg)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
}
