// Command quotad serves daily and weekly study quotas over HTTP.
//
// Configuration is read from the environment, optionally seeded from a .env
// file in the working directory:
//
//	QUOTA_ADDR       listen address (default ":8080")
//	QUOTA_DB_PATH    bbolt database file (default "data/quota.db")
//	QUOTA_LOG_LEVEL  debug, info, warn or error (default info)
//	QUOTA_TZ         IANA zone that defines "today" (default local)
//	QUOTA_MONGO_URI  when set, progress writes are copied to MongoDB
//	QUOTA_MONGO_DB   MongoDB database name (default "quota")
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sky-flux/quota"
	"github.com/sky-flux/quota/internal/api"
	"github.com/sky-flux/quota/store/boltstore"
	"github.com/sky-flux/quota/store/mongostore"
)

func main() {
	if err := run(); err != nil {
		newLogger(0).Error("quotad stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bolt, err := boltstore.Open(cfg.DBPath, boltstore.Options{})
	if err != nil {
		return err
	}
	defer bolt.Close()
	logger.Info("database ready", "path", cfg.DBPath)

	var store api.Store = bolt
	if cfg.MongoURI != "" {
		mongo, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
		if err != nil {
			return err
		}
		defer mongo.Close(context.Background())
		store = &mirroredStore{Store: bolt, mirror: mongo, logger: logger}
		logger.Info("progress log mirrored to mongo", "database", cfg.MongoDB)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := api.New(api.Config{
		Store:    store,
		Engine:   quota.NewEngine(quota.EngineConfig{Logger: logger, Concurrency: 4}),
		Logger:   logger,
		Location: cfg.Location,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "tz", cfg.Location.String())
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
