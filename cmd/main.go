package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book_tracker/internal/auth"
	"book_tracker/internal/config"
	"book_tracker/internal/handlers"
	"book_tracker/internal/logger"
	"book_tracker/internal/notify"
	"book_tracker/internal/repository"
	"book_tracker/internal/repository/db"
	"book_tracker/internal/server"
	"book_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title                      Book Tracker API
// @version                    1.0
// @description                Accounts and saved-book lists. GraphQL is served at /graphql.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	gin.SetMode(cfg.Mode)

	hasher, err := auth.NewHasher(cfg.Bcrypt.Cost)
	if err != nil {
		log.Fatalw("invalid bcrypt cost", "err", err)
	}
	tokens, err := auth.NewTokenService([]byte(cfg.JWT.Secret), auth.DefaultTokenTTL)
	if err != nil {
		log.Fatalw("failed to init token service", "err", err)
	}

	repos, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.DB.Driver, "err", err)
	}
	defer closeStore()

	// wire dependencies
	hub := notify.NewHub()
	services := service.NewService(repos, tokens, hasher, hub)

	var opts []handlers.Option
	if cfg.Client.BuildDir != "" {
		opts = append(opts, handlers.WithClientDir(cfg.Client.BuildDir))
	}
	apiHandler := handlers.NewHandler(services, log, opts...)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("Now listening", "addr", cfg.Addr(), "driver", cfg.DB.Driver)

	waitForShutdown(srv, log)
}

// openStore connects the configured backend and returns a matching close func.
func openStore(cfg *config.Config, log *logger.Logger) (*repository.Repository, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		sqlDB, err := db.InitSQLite(cfg.DB.Path)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteRepository(sqlDB), func() { closeSQLite(sqlDB, log) }, nil
	default:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		client, database, err := db.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, repository.UsersCollection)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoRepository(database), func() { disconnectMongo(client, log) }, nil
	}
}

func closeSQLite(sqlDB *sql.DB, log *logger.Logger) {
	if err := sqlDB.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}

func disconnectMongo(client *mongo.Client, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Errorw("failed to disconnect mongo", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
