package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Sayanabha/snowConnect/internal/config"
	apphttp "github.com/Sayanabha/snowConnect/internal/http"
	"github.com/Sayanabha/snowConnect/internal/repository/warehouse"
	"github.com/Sayanabha/snowConnect/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector, err := warehouse.NewConnector(warehouse.ConnectorConfig{
		Driver: cfg.Warehouse.Driver,
		DSN:    cfg.Warehouse.DSN,
		Pooled: cfg.Warehouse.Pooled,
	})
	if err != nil {
		logger.Fatalf("setup warehouse: %v", err)
	}
	defer connector.Close()

	userRepo, err := warehouse.NewUserRepository(connector, cfg.Warehouse.Table)
	if err != nil {
		logger.Fatalf("setup user repository: %v", err)
	}
	userService := service.NewUserService(userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, logger, cfg.Server.ErrorDetails)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"driver": cfg.Warehouse.Driver,
			"table":  cfg.Warehouse.Table,
			"pooled": cfg.Warehouse.Pooled,
		}).Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
