package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/sea-battle/internal/adapters/filestore"
	"github.com/kiryu-dev/sea-battle/internal/config"
	"github.com/kiryu-dev/sea-battle/internal/transport/console"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/kiryu-dev/sea-battle/internal/usecase/snapshot"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := flag.String("config", "", "path to config (default: searched in the user config dir)")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	layouts, err := cfg.GameLayouts()
	if err != nil {
		logger.Fatal(err.Error())
	}
	format, err := filestore.ParseFormat(cfg.SaveFormat)
	if err != nil {
		logger.Fatal(err.Error())
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var (
		repo      = filestore.New(cfg.SaveDir, format)
		snapshots = snapshot.New(repo, rng, logger, game.WithLayouts(layouts))
		newGame   = func() (*game.Game, error) {
			return game.New(rng, game.WithLayouts(layouts))
		}
		session = console.New(os.Stdin, os.Stdout, newGame, snapshots, logger)
	)
	logger.Info("starting session",
		zap.String("session", session.ID()),
		zap.Int64("seed", seed),
		zap.String("save dir", cfg.SaveDir),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()
	errGroup := new(errgroup.Group)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			cancel()
			return errors.Errorf("captured signal: %v", s)
		case err := <-done:
			return err
		}
	})
	err = errGroup.Wait()
	switch {
	case err == nil, errors.Is(err, console.ErrInputClosed):
		logger.Info("session finished", zap.Bool("finished", session.Finished()))
	default:
		logger.Info("session interrupted: "+err.Error(), zap.Bool("finished", session.Finished()))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.WithMessagef(err, "parse log level '%s'", level)
	}
	return cfg.Build()
}
