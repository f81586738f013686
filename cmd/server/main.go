package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

const defaultRedirectURI = "pocketapp1234:authorizationFinished"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Error running server")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	return newCommand().Run(ctx, args)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "pocket-auth",
		Usage: "Pocket OAuth token service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file applied before reading the environment",
				Value: config.DefaultEnvFile,
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP service",
				Action: serveAction,
			},
			{
				Name:  "login",
				Usage: "authorize this service against Pocket from the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "redirect-uri",
						Usage: "redirect URI registered for the Pocket consumer key",
						Value: defaultRedirectURI,
					},
				},
				Action: loginAction,
			},
			{
				Name:   "token",
				Usage:  "show which Pocket account the stored access token belongs to",
				Action: tokenAction,
			},
		},
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(ctx, cmd.String("env-file"))
	if err != nil {
		return err
	}
	defer a.Close()

	displayAppname(a.cfg.GetAppName())
	return a.serve(ctx)
}

func loginAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(ctx, cmd.String("env-file"))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := login(ctx, a.tokens, a.pocket, cmd.String("redirect-uri"), os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func tokenAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(ctx, cmd.String("env-file"))
	if err != nil {
		return err
	}
	defer a.Close()

	return showToken(credentials.TokenSource(ctx, a.repo), os.Stdout)
}
