package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/pocket-auth-server/auth"
	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/internal/config"
	"github.com/jrsteele09/pocket-auth-server/internal/logging"
	"github.com/jrsteele09/pocket-auth-server/pocket"
	"github.com/jrsteele09/pocket-auth-server/server"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// app owns the long-lived clients shared by every request.
type app struct {
	cfg       config.Config
	redis     *redis.Client
	repo      *credentials.RedisRepo
	pocket    *pocket.Client
	tokens    *auth.TokenService
	logCloser io.Closer
}

// newApp fails when the configuration is incomplete or Redis cannot be reached.
func newApp(ctx context.Context, envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logCloser, err := logging.Setup(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := credentials.NewRedisClient(ctx, cfg.GetRedisURL())
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	repo := credentials.NewRedisRepo(redisClient)

	pocketClient := pocket.NewClient(cfg.GetConsumerKey(),
		pocket.WithBaseURL(cfg.GetPocketBaseURL()),
		pocket.WithTimeout(cfg.GetPocketTimeout()),
	)

	tokens, err := auth.NewTokenService(pocketClient, repo)
	if err != nil {
		_ = redisClient.Close()
		_ = logCloser.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		redis:     redisClient,
		repo:      repo,
		pocket:    pocketClient,
		tokens:    tokens,
		logCloser: logCloser,
	}, nil
}

func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close redis client")
	}
	_ = a.logCloser.Close()
}

// serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func (a *app) serve(ctx context.Context) error {
	handler, err := server.New(a.cfg, a.tokens, a.repo)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: a.cfg.GetReadHeaderTimeout(),
		WriteTimeout:      a.cfg.GetWriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listenAndServe(srv)
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(srv, a.cfg)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}

func listenAndServe(srv *http.Server) error {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe: %w", err)
	}
	return nil
}

func shutdown(srv *http.Server, cfg config.ServerConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
