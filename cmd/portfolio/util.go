package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/westley-wess/portfolio/annotations"
	"github.com/westley-wess/portfolio/client"
)

const defaultStoreFile = "portfolio/annotations.json"

func setupLogging(cctx *cli.Context) error {
	level := zerolog.WarnLevel
	if cctx.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

func newAPIClient(cctx *cli.Context) *client.Client {
	token := cctx.String("token")
	return client.New(cctx.String("api-url"), client.WithCredentials(func(context.Context) (string, error) {
		return token, nil
	}))
}

// storePath resolves --store, falling back to the XDG data directory
func storePath(cctx *cli.Context) (string, error) {
	if p := cctx.String("store"); p != "" {
		return p, nil
	}
	return xdg.DataFile(defaultStoreFile)
}

func openRepository(path string) (annotations.Repository, error) {
	if strings.HasSuffix(path, ".db") {
		return annotations.OpenSQLiteRepository(path)
	}
	return annotations.NewFileRepository(path), nil
}

func openStore(cctx *cli.Context) (*annotations.Store, error) {
	path, err := storePath(cctx)
	if err != nil {
		return nil, fmt.Errorf("resolve annotation store: %w", err)
	}
	repo, err := openRepository(path)
	if err != nil {
		return nil, err
	}
	return annotations.NewStore(repo), nil
}
