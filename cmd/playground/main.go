package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/interact/internal/config"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/injector"
)

func main() {
	path := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	flag.Parse()

	if err := run(*path, *addr); err != nil {
		fmt.Fprintln(os.Stderr, "playground:", err)
		os.Exit(1)
	}
}

func run(path, addr string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Loop.Run(ctx) })
	g.Go(func() error {
		if err := app.Server.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Server.Stop(shutdown); err != nil {
			app.Logger.Warn("Server shutdown failed", log.Error(err))
		}
		return app.Server.Close()
	})

	app.Logger.Info("Playground started", log.String("view", app.View.ID()))
	return g.Wait()
}
