package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizitup/internal/config"
	"quizitup/internal/db"
	"quizitup/internal/logger"
	"quizitup/internal/server"
	"quizitup/internal/store"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			openDatabase,
			store.New,
			server.New,
		),
		fx.Invoke(migrateDatabase),
		fx.Invoke(startHTTPServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start quizitup")
	}
	<-app.Done()
	log.Info().Msg("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func openDatabase(lc fx.Lifecycle, cfg config.Config) (*gorm.DB, error) {
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close(conn)
		},
	})
	return conn, nil
}

func migrateDatabase(conn *gorm.DB, cfg config.Config) error {
	if !cfg.AutoMigrate {
		return nil
	}
	return db.Migrate(conn)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.Server, cfg config.Config) {
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			listener, err := net.Listen("tcp", httpServer.Addr)
			if err != nil {
				return err
			}
			log.Info().Str("addr", httpServer.Addr).Str("base_url", cfg.BaseURL).Msg("quizitup server listening")
			go func() {
				if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("http server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}
